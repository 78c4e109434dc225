//go:build !linux || (!arm && !arm64)

package oepin

import "fmt"

func openGPIOCdev(pin int) (Pin, error) {
	return nil, fmt.Errorf("oepin: gpiocdev unsupported on this platform")
}
