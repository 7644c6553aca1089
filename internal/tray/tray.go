// Package tray provides the system tray interface for mudra. It shows the
// pipeline status and offers a detection toggle without opening the dashboard.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray is the menu-bar presence of the teleoperation pipeline.
type Tray struct {
	onToggle    func(enabled bool)
	onDashboard func()
	enabled     bool
	mu          sync.RWMutex

	// Menu items stored for later updates
	menuToggle  *systray.MenuItem
	menuGesture *systray.MenuItem
	menuCommand *systray.MenuItem
	menuVoice   *systray.MenuItem
}

// New creates a Tray with detection enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback invoked when detection is enabled or disabled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnDashboard sets the callback invoked when the dashboard item is clicked.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// Run starts the system tray. It blocks until systray.Quit() is called,
// so it must own the main goroutine on platforms that require it.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit tears the tray down, unblocking Run.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra gesture teleoperation")

	t.menuToggle = systray.AddMenuItem("● Detection on", "Toggle gesture detection")
	systray.AddSeparator()

	t.menuGesture = systray.AddMenuItem("Gesture: none", "Last confirmed gesture")
	t.menuGesture.Disable()
	t.menuCommand = systray.AddMenuItem("Command: STOP", "Last dispatched command")
	t.menuCommand.Disable()
	t.menuVoice = systray.AddMenuItem("Voice: off", "Voice control status")
	t.menuVoice.Disable()
	systray.AddSeparator()

	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Open the web dashboard")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuDashboard.ClickedCh:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Detection on")
	} else {
		t.menuToggle.SetTitle("○ Detection off")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// SetGesture updates the last-gesture line in the menu.
func (t *Tray) SetGesture(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuGesture != nil {
		if name == "" {
			t.menuGesture.SetTitle("Gesture: none")
		} else {
			t.menuGesture.SetTitle("Gesture: " + name)
		}
	}
}

// SetCommand updates the last-command line in the menu.
func (t *Tray) SetCommand(cmd string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuCommand != nil && cmd != "" {
		t.menuCommand.SetTitle("Command: " + cmd)
	}
}

// SetVoiceActive updates the voice status line in the menu.
func (t *Tray) SetVoiceActive(on bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuVoice == nil {
		return
	}
	if on {
		t.menuVoice.SetTitle("Voice: listening")
	} else {
		t.menuVoice.SetTitle("Voice: off")
	}
}
