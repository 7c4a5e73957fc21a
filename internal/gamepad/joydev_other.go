//go:build !unix

package gamepad

import "fmt"

func openDevice(path string) (deviceHandle, error) {
	return nil, fmt.Errorf("open %s: %w", path, ErrUnavailable)
}

func isWouldBlock(error) bool {
	return false
}
