// Package oepin drives the active-low output enable (OE) line of the
// PCA9634. Backends are selected by name from the config file.
package oepin

import (
	"fmt"
	"strings"
)

// Pin is a digital output. Set(true) drives the line high, which disables
// the chip outputs.
//
// Close should be best-effort and leave the line in a safe state.
type Pin interface {
	Set(level bool) error
	Close() error
}

const (
	BackendNone     = "none"
	BackendGPIOCdev = "gpiocdev"
	BackendRPIO     = "rpio"
)

var (
	openGPIOCdevFn = openGPIOCdev
	openRPIOFn     = openRPIO
)

// Open returns the OE pin for backend. BackendNone (or "") yields a nil Pin
// and no error: the board then relies on its pull-down and OE stays enabled.
func Open(backend string, pin int) (Pin, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendGPIOCdev:
		return openGPIOCdevFn(pin)
	case BackendRPIO:
		return openRPIOFn(pin)
	default:
		return nil, fmt.Errorf("oepin: unknown backend %q", backend)
	}
}
