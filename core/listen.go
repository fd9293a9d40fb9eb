package core

import (
	"fmt"
	"net"
	"strconv"
)

// PortInUseError reports that the HTTP port is held by another process, or on
// Windows that it falls inside a reserved range.
type PortInUseError struct {
	Addr     string
	Reserved bool
	Cause    error
}

func (e *PortInUseError) Error() string {
	if e.Reserved {
		return fmt.Sprintf("port %s is in a range reserved by the system; set PORT or --port outside it", e.Addr)
	}
	return fmt.Sprintf("port %s is already in use; stop the other process or set PORT or --port", e.Addr)
}

func (e *PortInUseError) Unwrap() error {
	return e.Cause
}

// Listen opens a TCP listener on host:port, turning address-in-use failures into *PortInUseError.
func Listen(host string, port int) (net.Listener, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	listener, err := net.Listen("tcp", addr)
	if err == nil {
		return listener, nil
	}
	if held, reserved := portHeld(err); held {
		return nil, &PortInUseError{Addr: addr, Reserved: reserved, Cause: err}
	}
	return nil, err
}
