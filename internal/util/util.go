//go:build !windows

package util

// IsRunFromGUI reports whether the process was started outside a terminal.
// Hotkey launchers on macOS and Linux run modelboiler through a shell or a
// service menu, where the console is already invisible, so this is false.
func IsRunFromGUI() bool {
	return false
}

func HideConsoleWindow() {}
