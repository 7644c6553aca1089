package voice

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// VoskConfig configures the speech recognition subprocess.
type VoskConfig struct {
	ModelPath  string
	SampleRate int
}

// DefaultVoskConfig returns the standard small English model setup.
func DefaultVoskConfig() VoskConfig {
	return VoskConfig{
		ModelPath:  filepath.Join("models", "vosk-model-small-en-us-0.15"),
		SampleRate: 16000,
	}
}

// VoskTranscriber implements Transcriber on a Python Vosk subprocess. The
// service owns the microphone and writes one JSON line per recognition
// update, with either a "text" (final) or "partial" field.
type VoskTranscriber struct {
	config VoskConfig

	mu      sync.Mutex
	cmd     *exec.Cmd
	out     chan string
	started bool
}

// NewVoskTranscriber validates that the service script and model exist.
func NewVoskTranscriber(config VoskConfig) (*VoskTranscriber, error) {
	if findVoiceScript() == "" {
		return nil, fmt.Errorf("voice_service.py not found")
	}
	if _, err := os.Stat(config.ModelPath); err != nil {
		return nil, fmt.Errorf("vosk model: %w", err)
	}
	return &VoskTranscriber{config: config}, nil
}

// Start launches the subprocess and begins streaming transcripts.
func (t *VoskTranscriber) Start() (<-chan string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return t.out, nil
	}

	pythonPath := findVoiceVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	t.cmd = exec.Command(pythonPath, findVoiceScript(),
		fmt.Sprintf("--model=%s", t.config.ModelPath),
		fmt.Sprintf("--rate=%d", t.config.SampleRate),
	)
	t.cmd.Stderr = os.Stderr

	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	if err := t.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start voice service: %w", err)
	}

	t.out = make(chan string, 8)
	t.started = true

	go t.readLoop(bufio.NewReader(stdout))
	return t.out, nil
}

func (t *VoskTranscriber) readLoop(r *bufio.Reader) {
	defer close(t.out)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}

		var update struct {
			Text    string `json:"text"`
			Partial string `json:"partial"`
		}
		if err := json.Unmarshal([]byte(line), &update); err != nil {
			log.Printf("voice: malformed update: %v", err)
			continue
		}

		text := strings.TrimSpace(update.Text)
		if text == "" {
			text = strings.TrimSpace(update.Partial)
		}
		if text != "" {
			t.out <- strings.ToLower(text)
		}
	}
}

// Close terminates the subprocess. The transcript channel closes once the
// read loop drains.
func (t *VoskTranscriber) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return nil
	}
	t.started = false

	if t.cmd.Process != nil {
		t.cmd.Process.Kill()
	}
	return t.cmd.Wait()
}

func findVoiceScript() string {
	return findServiceFile("voice_service.py", "scripts")
}

func findVoiceVenvPython() string {
	return findServiceFile("python", filepath.Join("venv", "bin"))
}

// findServiceFile locates a helper file under dir, checking the working
// directory, its parent, the executable's directory, and ~/.mudra.
func findServiceFile(name, dir string) string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		filepath.Join(dir, name),
		filepath.Join("..", dir, name),
		filepath.Join(execDir, dir, name),
		filepath.Join(os.Getenv("HOME"), ".mudra", dir, name),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}
