//go:build sdl

package cli

import (
	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/sdlpad"
)

func init() {
	sdlBackend = func(afterInit func()) gamepad.Backend {
		return sdlpad.New(afterInit)
	}
}
