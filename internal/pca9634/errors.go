package pca9634

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChannelState is returned when a LEDOUT register holds the
	// unused 0b11 pattern for a channel.
	ErrInvalidChannelState = errors.New("pca9634: invalid channel state")
	// ErrDivisionPrecondition is returned when a ramp or speed computation
	// would divide by zero (no brightness delta, zero speed or step count).
	ErrDivisionPrecondition = errors.New("pca9634: division precondition violated")
	ErrInvalidChannel       = errors.New("pca9634: invalid channel")
	ErrInvalidMode          = errors.New("pca9634: invalid mode")
	ErrNoEnablePin          = errors.New("pca9634: no output enable pin configured")

	// ErrBus matches every BusError via errors.Is.
	ErrBus = errors.New("pca9634: bus transfer failed")
)

// BusError reports a failed transfer on the register transport. A failure in
// the write half of a read-modify-write leaves the register at its old value;
// nothing is retried.
type BusError struct {
	Op   string // "read" or "write"
	Addr uint16
	Reg  byte
	Err  error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("pca9634: %s addr=0x%02X reg=0x%02X: %v", e.Op, e.Addr, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

func (e *BusError) Is(target error) bool { return target == ErrBus }
