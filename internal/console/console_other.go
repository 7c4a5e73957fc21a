//go:build !windows

// Package console handles the Windows console. Elsewhere it is a no-op.
package console

// IsRunningFromConsole always reports true outside Windows.
func IsRunningFromConsole() bool {
	return true
}

// SetupConsoleHandler does nothing outside Windows, where os.Interrupt is
// delivered reliably. The returned function is also a no-op.
func SetupConsoleHandler(onShutdown func()) func() {
	return func() {}
}
