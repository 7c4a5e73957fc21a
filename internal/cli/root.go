// Package cli wires configuration, logging and the hosts into the inputnav
// command.
package cli

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/inputnav/internal/config"
	"github.com/soar/inputnav/internal/console"
	"github.com/soar/inputnav/internal/logging"
)

var (
	cfgFile     string
	cfg         config.Config
	fromConsole = true
	frontendFS  fs.FS
)

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"backend":       "backend",
	"device-glob":   "device_glob",
	"poll-interval": "poll_interval",
	"deadzone":      "deadzone",
	"debounce":      "debounce",
	"grid":          "grid",
	"log-level":     "log.level",
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "inputnav",
	Short: "Navigate a menu grid with keyboard, mouse and game controller",
	Long: `inputnav polls a game controller, decodes button presses into navigation
intents and drives a spatial focus registry shared with keyboard and pointer input.
Run "serve" for the web viewer, "tui" for the terminal or "probe" to test a controller.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(frontend fs.FS) {
	frontendFS = frontend
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.inputnav.toml)")
	flags.String("backend", defaults.Backend, "controller backend: auto, joydev, xinput, sdl or none")
	flags.String("device-glob", defaults.DeviceGlob, "joystick device glob for the joydev backend")
	flags.Duration("poll-interval", defaults.PollInterval, "controller poll interval")
	flags.Float64("deadzone", defaults.Deadzone, "stick deadzone as a fraction of full scale")
	flags.Duration("debounce", defaults.Debounce, "pointer hover suppression after a directional move")
	flags.Bool("grid", defaults.Grid, "use spatial grid navigation for arrow keys and the d-pad")
	flags.String("log-level", defaults.Log.Level, "log level: debug, info, warn or error")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// setup reads the config file, applies flags and installs logging before any
// subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	// Must run before logging is bound to stderr; it may swap the std streams.
	fromConsole = console.IsRunningFromConsole()

	if err := bindFlags(cmd); err != nil {
		return err
	}
	if err := config.ReadFile(viper.GetViper(), cfgFile); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if err := logging.Setup(os.Stderr, cfg.Log.Level); err != nil {
		return err
	}

	if used := viper.ConfigFileUsed(); used != "" {
		slog.Debug("Using config file", "path", used)
	}
	slog.Debug("Configuration loaded", "settings", viper.AllSettings())
	return nil
}

// bindFlags lets explicitly set flags override config and environment values.
func bindFlags(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := viper.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("binding flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}
