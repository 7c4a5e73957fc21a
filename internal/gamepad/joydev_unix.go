//go:build unix

package gamepad

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func openDevice(path string) (deviceHandle, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A non-blocking descriptor is registered with the runtime poller, which
	// makes read deadlines work.
	return os.NewFile(uintptr(fd), path), nil
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN)
}
