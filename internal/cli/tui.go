package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/soar/inputnav/internal/app"
	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/logging"
	"github.com/soar/inputnav/internal/tui"
)

var logFile string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Navigate the menu in the terminal",
	Long: `Shows the demo menu in the terminal. Arrow keys, tab, the mouse and the
controller all move the same selection. Logs go to --log-file since the screen is
taken over.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of discarding them")
}

func runTUI() error {
	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := logging.Setup(out, cfg.Log.Level); err != nil {
		return err
	}

	var model *tui.Model
	session, err := app.NewSession(app.Options{
		Grid:     cfg.Grid,
		Debounce: cfg.Debounce,
		OnQuit:   func() { model.RequestQuit() },
	})
	if err != nil {
		return err
	}
	model = tui.New(session)

	backend, err := newBackend(cfg, nil)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	poller := gamepad.NewPoller(backend, gamepad.NewDecoder(cfg.Deadzone), tui.Sink{Program: p}, cfg.PollInterval)
	poller.Start()
	defer poller.Stop()

	slog.Info("Terminal host started", "backend", resolveBackend(cfg.Backend))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
