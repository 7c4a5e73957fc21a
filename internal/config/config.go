// Package config loads runtime settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/input"
)

const (
	// FileName is the config file name searched for in $HOME and ".".
	FileName  = ".inputnav"
	EnvPrefix = "inputnav"
)

// Backend names.
const (
	BackendAuto   = "auto"
	BackendJoydev = "joydev"
	BackendXInput = "xinput"
	BackendSDL    = "sdl"
	BackendNone   = "none"
)

var backends = []string{BackendAuto, BackendJoydev, BackendXInput, BackendSDL, BackendNone}

type Log struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Backend         string        `mapstructure:"backend"`
	DeviceGlob      string        `mapstructure:"device_glob"`
	SysfsRoot       string        `mapstructure:"sysfs_root"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	RescanInterval  time.Duration `mapstructure:"rescan_interval"`
	Deadzone        float64       `mapstructure:"deadzone"`
	Debounce        time.Duration `mapstructure:"debounce"`
	ReprobeInterval time.Duration `mapstructure:"reprobe_interval"`
	MaxFailures     int           `mapstructure:"max_failures"`
	Grid            bool          `mapstructure:"grid"`
	Addr            string        `mapstructure:"addr"`
	Log             Log           `mapstructure:"log"`
}

func Default() Config {
	return Config{
		Backend:         BackendAuto,
		DeviceGlob:      gamepad.DefaultDeviceGlob,
		SysfsRoot:       gamepad.DefaultSysfsRoot,
		PollInterval:    gamepad.DefaultPollInterval,
		ReadTimeout:     gamepad.DefaultReadTimeout,
		RescanInterval:  gamepad.DefaultRescanInterval,
		Deadzone:        gamepad.DefaultDeadzone,
		Debounce:        input.DefaultDebounce,
		ReprobeInterval: gamepad.DefaultReprobeInterval,
		MaxFailures:     gamepad.DefaultMaxFailures,
		Grid:            true,
		Addr:            "localhost:8080",
		Log:             Log{Level: "info"},
	}
}

// SetDefaults registers Default() with v so every key is known to viper,
// which AutomaticEnv needs to resolve environment variables on Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("device_glob", d.DeviceGlob)
	v.SetDefault("sysfs_root", d.SysfsRoot)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("read_timeout", d.ReadTimeout)
	v.SetDefault("rescan_interval", d.RescanInterval)
	v.SetDefault("deadzone", d.Deadzone)
	v.SetDefault("debounce", d.Debounce)
	v.SetDefault("reprobe_interval", d.ReprobeInterval)
	v.SetDefault("max_failures", d.MaxFailures)
	v.SetDefault("grid", d.Grid)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("log.level", d.Log.Level)
}

// ReadFile points v at the config file and reads it. An empty path searches
// $HOME and the working directory for .inputnav.toml; a missing file is not an
// error in that case.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("toml")
		v.SetConfigName(FileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(backends, c.Backend) {
		errs = append(errs, fmt.Errorf("backend %q: must be one of %v", c.Backend, backends))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval %v: must be positive", c.PollInterval))
	}
	if c.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("read_timeout %v: must be positive", c.ReadTimeout))
	}
	if c.ReadTimeout >= c.PollInterval && c.PollInterval > 0 {
		errs = append(errs, fmt.Errorf("read_timeout %v: must be shorter than poll_interval %v", c.ReadTimeout, c.PollInterval))
	}
	if c.RescanInterval < 0 {
		errs = append(errs, fmt.Errorf("rescan_interval %v: must not be negative", c.RescanInterval))
	}
	if c.Deadzone <= 0 || c.Deadzone > 1 {
		errs = append(errs, fmt.Errorf("deadzone %v: must be in (0, 1]", c.Deadzone))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce %v: must not be negative", c.Debounce))
	}
	if c.ReprobeInterval <= 0 {
		errs = append(errs, fmt.Errorf("reprobe_interval %v: must be positive", c.ReprobeInterval))
	}
	if c.MaxFailures <= 0 {
		errs = append(errs, fmt.Errorf("max_failures %d: must be positive", c.MaxFailures))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// JoydevConfig returns the device-file backend settings.
func (c Config) JoydevConfig() gamepad.JoydevConfig {
	return gamepad.JoydevConfig{
		Glob:           c.DeviceGlob,
		SysfsRoot:      c.SysfsRoot,
		ReadTimeout:    c.ReadTimeout,
		RescanInterval: c.RescanInterval,
	}
}

// APIConfig returns the API-call backend settings.
func (c Config) APIConfig() gamepad.APIConfig {
	return gamepad.APIConfig{
		MaxFailures:     c.MaxFailures,
		ReprobeInterval: c.ReprobeInterval,
	}
}
