//go:build !windows

package gamepad

// XInputProbes returns no probes; XInput exists only on Windows.
func XInputProbes() []Probe {
	return nil
}
