//go:build windows

package core

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

// portHeld classifies a bind failure. Ports inside a Hyper-V or WinNAT excluded
// range fail with WSAEACCES rather than WSAEADDRINUSE.
func portHeld(err error) (held, reserved bool) {
	if errors.Is(err, windows.WSAEACCES) {
		return true, true
	}
	return errors.Is(err, windows.WSAEADDRINUSE) || errors.Is(err, syscall.EADDRINUSE), false
}
