package cli

import (
	"fmt"
	"runtime"

	"github.com/soar/inputnav/internal/config"
	"github.com/soar/inputnav/internal/gamepad"
)

// sdlBackend is set when the binary is built with the sdl tag.
var sdlBackend func(afterInit func()) gamepad.Backend

// resolveBackend picks a concrete backend name for "auto".
func resolveBackend(name string) string {
	if name != config.BackendAuto {
		return name
	}
	switch {
	case runtime.GOOS == "linux":
		return config.BackendJoydev
	case runtime.GOOS == "windows":
		return config.BackendXInput
	case sdlBackend != nil:
		return config.BackendSDL
	}
	return config.BackendNone
}

// newBackend builds the configured backend. afterInit runs once a backend that
// needs library initialization has done so.
func newBackend(c config.Config, afterInit func()) (gamepad.Backend, error) {
	switch name := resolveBackend(c.Backend); name {
	case config.BackendJoydev:
		return gamepad.NewJoydevBackend(c.JoydevConfig()), nil
	case config.BackendXInput:
		return gamepad.NewAPIBackend(gamepad.XInputProbes(), c.APIConfig()), nil
	case config.BackendSDL:
		if sdlBackend == nil {
			return nil, fmt.Errorf("backend %q: not compiled in, rebuild with -tags sdl", name)
		}
		return sdlBackend(afterInit), nil
	case config.BackendNone:
		return gamepad.NoneBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
