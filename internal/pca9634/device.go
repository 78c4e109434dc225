// Package pca9634 drives an NXP PCA9634 8-channel LED/PWM controller, as
// found on the Joy-IT SBC-MotoDriver3 board.
//
// Channel modes live in two packed LEDOUT registers and are never cached:
// every query reads the chip. The Device is not safe for concurrent use and
// the bus it runs on must not be shared with other goroutines without
// external locking.
package pca9634

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// EnablePin drives the active-low output enable line.
type EnablePin interface {
	Set(level bool) error
}

type Config struct {
	// Address is the 7-bit I2C address of the chip (required).
	Address uint16
	// Enable is optional; without it SetEnabled returns ErrNoEnablePin and
	// Begin leaves the line alone.
	Enable EnablePin
}

type Device struct {
	bus  drivers.I2C
	addr uint16
	oe   EnablePin

	// Fixed buffers to avoid per-call allocations.
	w [2]byte
	r [1]byte
}

// New binds a Device to an already configured bus. It does not touch the chip.
func New(bus drivers.I2C, cfg Config) (*Device, error) {
	if bus == nil {
		return nil, fmt.Errorf("pca9634: bus is nil")
	}
	if cfg.Address == 0 || cfg.Address > 0x7F {
		return nil, fmt.Errorf("pca9634: invalid address 0x%X", cfg.Address)
	}
	return &Device{bus: bus, addr: cfg.Address, oe: cfg.Enable}, nil
}

func (d *Device) Address() uint16 { return d.addr }

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg & regAddrMask
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, &BusError{Op: "read", Addr: d.addr, Reg: reg, Err: err}
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	if err := d.bus.Tx(d.addr, d.w[:2], nil); err != nil {
		return &BusError{Op: "write", Addr: d.addr, Reg: reg, Err: err}
	}
	return nil
}

func checkChannel(ch Channel) error {
	if ch >= NumChannels {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}
	return nil
}
