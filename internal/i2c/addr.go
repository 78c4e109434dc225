// Package i2c provides the byte-level transports the PCA9634 driver runs on.
// Every transport here implements tinygo.org/x/drivers.I2C.
package i2c

import "fmt"

func checkAddr(addr uint16) error {
	if addr == 0 || addr > 0x7F {
		return fmt.Errorf("invalid i2c addr 0x%X", addr)
	}
	return nil
}
