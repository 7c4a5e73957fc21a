package tray

import (
	"log/slog"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

// Options wires tray menu items to the application.
type Options struct {
	// URL opened by "Open Browser".
	URL string
	// Grid is the initial state of the grid navigation checkbox.
	Grid bool
	// OnGrid runs when the checkbox is clicked, with the new state.
	OnGrid func(enabled bool)
	// OnExit runs once when "Exit" is clicked.
	OnExit func()
}

// Tray manages the system tray icon and menu
type Tray struct {
	opts         Options
	once         sync.Once
	shuttingDown atomic.Bool
	ready        chan struct{}

	menuStatus *systray.MenuItem
	menuGrid   *systray.MenuItem
	menuOpen   *systray.MenuItem
	menuExit   *systray.MenuItem
}

// New creates a new Tray instance
func New(opts Options) *Tray {
	return &Tray{
		opts:  opts,
		ready: make(chan struct{}),
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// Quit closes the tray from outside the menu.
func (t *Tray) Quit() {
	if t.shuttingDown.CompareAndSwap(false, true) {
		systray.Quit()
	}
}

// SetStatus shows the controller status line. Calls made before the tray is
// ready are dropped.
func (t *Tray) SetStatus(status string) {
	select {
	case <-t.ready:
		t.menuStatus.SetTitle(status)
	default:
	}
}

// SetGrid syncs the grid checkbox with a change made elsewhere.
func (t *Tray) SetGrid(enabled bool) {
	select {
	case <-t.ready:
	default:
		return
	}
	if enabled {
		t.menuGrid.Check()
	} else {
		t.menuGrid.Uncheck()
	}
}

// onReady is called when the tray is ready
func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("inputnav")
	systray.SetTooltip("inputnav - " + t.opts.URL)

	t.menuStatus = systray.AddMenuItem("No controller", "Controller status")
	t.menuStatus.Disable()
	systray.AddSeparator()
	t.menuGrid = systray.AddMenuItemCheckbox("Grid Navigation", "Move spatially on the menu grid", t.opts.Grid)
	t.menuOpen = systray.AddMenuItem("Open Browser", "Open web interface")
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")
	close(t.ready)

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	slog.Info("System tray initialized")
}

// handleMenuClicks processes menu item clicks without blocking
func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuGrid.ClickedCh:
			enabled := !t.menuGrid.Checked()
			t.SetGrid(enabled)
			if t.opts.OnGrid != nil {
				t.opts.OnGrid(enabled)
			}
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				OpenBrowser(t.opts.URL)
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				if t.opts.OnExit != nil {
					t.once.Do(t.opts.OnExit)
				}
				systray.Quit()
				return
			}
		}
	}
}

// onExit is called when the tray is exiting
func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	slog.Info("System tray exiting")
}

// OpenBrowser opens url in the default web browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		slog.Warn("Failed to open browser", "url", url, "error", err)
	}
}
