//go:build !linux

package oepin

import "fmt"

func openRPIO(pin int) (Pin, error) {
	return nil, fmt.Errorf("oepin: rpio unsupported on this platform")
}
