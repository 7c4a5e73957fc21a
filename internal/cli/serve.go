package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soar/inputnav/internal/app"
	"github.com/soar/inputnav/internal/config"
	"github.com/soar/inputnav/internal/console"
	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/hub"
	"github.com/soar/inputnav/internal/mainloop"
	"github.com/soar/inputnav/internal/server"
	"github.com/soar/inputnav/internal/tray"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

var (
	noTray      bool
	openBrowser bool
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the menu to a browser over WebSocket",
	Long: `Polls the controller and serves the demo menu on a local web page. Keyboard and
mouse input from the page and controller input share one focus registry.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", config.Default().Addr, "HTTP listen address")
	serveCmd.Flags().BoolVar(&noTray, "no-tray", false, "do not show the system tray icon (Windows)")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false, "open the browser once listening")
	flagKeys["addr"] = "addr"
}

func runServe(parent context.Context) error {
	ctx, cancel := signal.NotifyContext(parent, shutdownSignals...)
	defer cancel()
	reregister := console.SetupConsoleHandler(cancel)

	session, err := app.NewSession(app.Options{
		Grid:     cfg.Grid,
		Debounce: cfg.Debounce,
		OnQuit:   cancel,
	})
	if err != nil {
		return err
	}

	backend, err := newBackend(cfg, reregister)
	if err != nil {
		return err
	}

	loop := mainloop.New(0)
	h := hub.NewHub()
	b := hub.NewBroadcaster(h)
	web := app.NewWeb(session, loop, b)
	srv := server.New(h, b, web, frontendFS, cfg.Addr)

	var t *tray.Tray
	if runtime.GOOS == "windows" && !noTray {
		t = tray.New(tray.Options{
			URL:    "http://" + cfg.Addr,
			Grid:   cfg.Grid,
			OnGrid: web.SetGrid,
			OnExit: cancel,
		})
		web.OnStatus = t.SetStatus
		web.OnGrid = t.SetGrid
	}

	go h.Run(ctx)
	go b.Run(ctx)
	go loop.Run(ctx)
	web.Start()

	poller := gamepad.NewPoller(backend, gamepad.NewDecoder(cfg.Deadzone), web, cfg.PollInterval)
	poller.Start()
	defer poller.Stop()

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe(func(addr string) {
			url := "http://" + addr
			slog.Info("inputnav started", "url", url, "backend", resolveBackend(cfg.Backend))
			if openBrowser || !fromConsole {
				tray.OpenBrowser(url)
			}
		})
	}()

	if t != nil {
		go t.Run(tray.GetIcon())
		defer t.Quit()
	} else {
		slog.Info("Press Ctrl+C to exit")
	}

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
	case err := <-serverErrCh:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", "error", err)
	}

	slog.Info("inputnav stopped")
	return runErr
}
