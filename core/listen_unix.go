//go:build !windows

package core

import (
	"errors"
	"syscall"
)

// portHeld classifies a bind failure. Unix has no reserved port ranges.
func portHeld(err error) (held, reserved bool) {
	return errors.Is(err, syscall.EADDRINUSE), false
}
