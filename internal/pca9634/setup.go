package pca9634

import (
	"fmt"
	"time"
)

// Begin runs the power-up sequence: outputs enabled (when a pin is wired),
// MODE1 then MODE2 written with the board defaults and the settle delays the
// oscillator needs.
func (d *Device) Begin() error {
	if d.oe != nil {
		if err := d.SetEnabled(true); err != nil {
			return err
		}
	}
	sleep(10 * time.Millisecond)
	if err := d.writeReg(regMode1, mode1Init); err != nil {
		return err
	}
	sleep(500 * time.Microsecond)
	if err := d.writeReg(regMode2, mode2Init); err != nil {
		return err
	}
	sleep(10 * time.Millisecond)
	return nil
}

// SoftReset sends the software reset sequence to the reserved reset address.
// Every PCA9634 on the bus resets, not only this Device.
func (d *Device) SoftReset() error {
	seq := softResetSeq
	if err := d.bus.Tx(SoftResetAddress, seq[:], nil); err != nil {
		return &BusError{Op: "write", Addr: SoftResetAddress, Reg: seq[0], Err: err}
	}
	return nil
}

// SetEnabled gates all outputs through the active-low OE line. Channel modes
// and duties are kept while disabled.
func (d *Device) SetEnabled(on bool) error {
	if d.oe == nil {
		return ErrNoEnablePin
	}
	if err := d.oe.Set(!on); err != nil {
		return fmt.Errorf("pca9634: output enable: %w", err)
	}
	return nil
}
