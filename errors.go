package serial

import (
	"errors"
	"fmt"

	gobug "go.bug.st/serial"
)

var (
	ErrClosed           = errors.New("serial: port closed")
	ErrInvalidConfig    = errors.New("serial: invalid port configuration")
	ErrPortNotFound     = errors.New("serial: port not found")
	ErrPermissionDenied = errors.New("serial: permission denied")
	ErrPortBusy         = errors.New("serial: port busy")
)

// FailureKind classifies the failures reported through Handler.OnFailed.
type FailureKind int

const (
	// FailureOpen means the port could not be opened. The session never
	// started and Start may simply be retried.
	FailureOpen FailureKind = iota + 1
	// FailureRead is a transport error on the receive path.
	FailureRead
	// FailureWrite is a transport error on the transmit path.
	FailureWrite
)

func (k FailureKind) String() string {
	switch k {
	case FailureOpen:
		return "open"
	case FailureRead:
		return "read"
	case FailureWrite:
		return "write"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// FailureError is the error handed to Handler.OnFailed.
type FailureError struct {
	Kind FailureKind
	Port string
	Err  error
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("serial: %s %s: %v", e.Kind, e.Port, e.Err)
}

func (e *FailureError) Unwrap() error {
	return e.Err
}

// classifyOpenError attaches one of the package sentinels to errors coming
// from go.bug.st/serial so callers can use errors.Is.
func classifyOpenError(err error) error {
	var pe *gobug.PortError
	if !errors.As(err, &pe) {
		return err
	}
	switch pe.Code() {
	case gobug.PortNotFound:
		return fmt.Errorf("%w: %w", ErrPortNotFound, err)
	case gobug.PermissionDenied:
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case gobug.PortBusy:
		return fmt.Errorf("%w: %w", ErrPortBusy, err)
	case gobug.InvalidSpeed, gobug.InvalidDataBits, gobug.InvalidParity,
		gobug.InvalidStopBits, gobug.InvalidTimeoutValue:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	case gobug.PortClosed:
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return err
}
