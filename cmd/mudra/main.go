package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/command"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/speech"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/stream"
	"github.com/ayusman/mudra/internal/tray"
	"github.com/ayusman/mudra/internal/voice"
)

func main() {
	robotAddr := flag.String("robot", "127.0.0.1:5005", "UDP address commands are sent to")
	listenAddr := flag.String("listen", ":8080", "dashboard listen address")
	cameraID := flag.Int("camera", 0, "OpenCV camera device index")
	streamAddr := flag.String("stream", "", "listen for remote UDP video on this address instead of the local camera")
	motionThresh := flag.Float64("motion", capture.DefaultMotionThreshold, "percent of pixels that must change to count as motion")
	noVoice := flag.Bool("no-voice", false, "disable voice control")
	voskModel := flag.String("vosk-model", "", "path to the vosk model directory")
	flag.Parse()

	fmt.Println("Mudra - Gesture Teleoperation")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	configDir := findConfigDir()
	if configDir != "" {
		fmt.Printf("Loading configuration from: %s\n", configDir)
	}

	// Seed the store from the bundled bindings, then let the store win so
	// dashboard edits survive restarts.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defaults := action.LoadMapper(filepath.Join(configDir, "gestures.json"))
	if err := st.SeedBindings(ctx, defaults.Bindings()); err != nil {
		log.Printf("Failed to seed bindings: %v", err)
	}
	bindings, err := st.BindingMap(ctx)
	cancel()
	if err != nil {
		log.Printf("Failed to load bindings from store: %v", err)
		bindings = defaults.Bindings()
	}
	mapper := action.NewMapper(bindings)

	phrases := speech.LoadPhrases(filepath.Join(configDir, "phrases.json"))
	speaker := speech.NewSpeaker("", 0)
	defer speaker.Stop()

	sender, err := command.NewSender(*robotAddr)
	if err != nil {
		log.Fatalf("Failed to open command link to %s: %v", *robotAddr, err)
	}
	defer sender.Close()

	camera, err := openCamera(*cameraID, *streamAddr)
	if err != nil {
		log.Fatalf("Failed to open video source: %v", err)
	}
	defer camera.Close()

	det, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to create hand detector: %v", err)
	}
	defer det.Close()

	// The voice processor feeds the app, the app owns the dispatcher, and
	// the dispatcher suppresses the processor while speech is playing. The
	// handler closure breaks the cycle: a is assigned before Start.
	var a *app.App
	proc := openVoice(*noVoice, *voskModel, func(cmd string) {
		a.HandleVoice(cmd)
	})

	var suppress command.Suppressible
	if proc != nil {
		suppress = proc
	}
	dispatcher := command.NewDispatcher(phrases, speaker, suppress)

	t := tray.New()

	var srv *server.Server
	a = app.New(app.Options{
		Camera:        camera,
		Detector:      det,
		Mapper:        mapper,
		Dispatcher:    dispatcher,
		Sink:          sender,
		Store:         st,
		ConfirmFrames: gesture.DefaultConfirmFrames,
		MotionThresh:  *motionThresh,
		Notify: func(e server.Event) {
			if srv != nil {
				srv.Broadcast(e)
			}
			switch e.Type {
			case "confirmed":
				t.SetGesture(e.Gesture)
			case "dispatched":
				t.SetCommand(e.Command)
			}
		},
	})

	srv = server.New(*listenAddr, a, a, st)
	srv.OnBindingsChanged = func(m map[string]string) {
		a.SetMapper(action.NewMapper(m))
	}
	srv.Start()

	a.Start()
	if proc != nil {
		if err := proc.Start(); err != nil {
			log.Printf("Voice control unavailable: %v", err)
		} else {
			a.SetVoiceActive(true)
			t.SetVoiceActive(true)
		}
	}

	t.OnToggle(a.SetEnabled)
	t.OnDashboard(func() {
		openBrowser("http://localhost" + *listenAddr)
	})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		t.Quit()
	}()

	// Blocks until the quit item is clicked or a signal arrives.
	t.Run()

	fmt.Println("Shutting down")
	a.Stop()
	if proc != nil {
		proc.Stop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	shutdownCancel()
}

// openCamera selects the video source: the local webcam, or a UDP frame
// stream from a remote robot when -stream is set.
func openCamera(device int, streamAddr string) (capture.Camera, error) {
	if streamAddr == "" {
		return capture.OpenWebcam(device)
	}
	c, err := stream.Listen(streamAddr)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Listening for remote video on %s\n", streamAddr)
	return &streamCamera{client: c, frame: gocv.NewMat()}, nil
}

// streamCamera adapts the UDP stream client to the Camera interface.
type streamCamera struct {
	client *stream.Client
	frame  gocv.Mat
}

func (s *streamCamera) Read() (*gocv.Mat, error) {
	m := s.client.Frame()
	if m == nil {
		return nil, capture.ErrNoFrame
	}
	if !s.frame.Empty() {
		s.frame.Close()
	}
	s.frame = *m
	return &s.frame, nil
}

func (s *streamCamera) Close() error {
	if !s.frame.Empty() {
		s.frame.Close()
	}
	return s.client.Close()
}

// openVoice builds the voice processor, or returns nil when voice control
// is disabled or misconfigured. Voice is optional: the gesture pipeline
// runs the same either way.
func openVoice(disabled bool, modelPath string, handler func(cmd string)) *voice.Processor {
	if disabled {
		return nil
	}
	config := voice.DefaultVoskConfig()
	if modelPath != "" {
		config.ModelPath = modelPath
	}
	tr, err := voice.NewVoskTranscriber(config)
	if err != nil {
		log.Printf("Voice control disabled: %v", err)
		return nil
	}
	return voice.NewProcessor(tr, handler)
}

// findConfigDir searches for the config directory in common locations.
// It checks "config", "../config", "../../config", and ~/.mudra/config.
// Returns the first existing directory or empty string if none found.
func findConfigDir() string {
	relativePaths := []string{"config", "../config", "../../config"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeConfigDir := filepath.Join(homeDir, ".mudra", "config")
	if info, err := os.Stat(homeConfigDir); err == nil && info.IsDir() {
		return homeConfigDir
	}

	return ""
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
