package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/nav"
)

var probeDuration time.Duration

// probeCmd represents the probe command.
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Log controller connection changes and decoded intents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runProbe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().DurationVar(&probeDuration, "duration", 0, "stop after this long (0 runs until interrupted)")
}

type logSink struct{}

func (logSink) Intent(intent nav.Intent) {
	slog.Info("Intent", "intent", intent.String())
}

func (logSink) ConnectionChanged(ev gamepad.ConnectionEvent) {
	if ev.Connected {
		slog.Info("Connected", "device", ev.Descriptor)
		return
	}
	slog.Info("Disconnected")
}

func runProbe(parent context.Context) error {
	ctx, cancel := signal.NotifyContext(parent, shutdownSignals...)
	defer cancel()
	if probeDuration > 0 {
		ctx, cancel = context.WithTimeout(ctx, probeDuration)
		defer cancel()
	}

	backend, err := newBackend(cfg, nil)
	if err != nil {
		return err
	}

	poller := gamepad.NewPoller(backend, gamepad.NewDecoder(cfg.Deadzone), logSink{}, cfg.PollInterval)
	slog.Info("Probing controller", "backend", resolveBackend(cfg.Backend), "interval", cfg.PollInterval)
	poller.Start()
	<-ctx.Done()
	poller.Stop()
	return nil
}
