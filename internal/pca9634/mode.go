package pca9634

import "fmt"

// Channel is an LED output index, 0..7.
type Channel uint8

// Mode is the LEDOUT driver state of one channel.
type Mode uint8

const (
	ModeOff Mode = iota // 0b00
	ModeOn              // first bit set
	ModePWM             // second bit set
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeOn:
		return "on"
	case ModePWM:
		return "pwm"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// bulk returns the LEDOUT byte that puts all four channels of a register in m.
func (m Mode) bulk() (byte, error) {
	switch m {
	case ModeOff:
		return AllOff, nil
	case ModeOn:
		return AllOn, nil
	case ModePWM:
		return AllPWM, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidMode, m)
}

// modeReg maps a channel to its LEDOUT register and the channel's position
// inside that register.
func modeReg(ch Channel) (reg byte, local uint8) {
	if ch < channelsPerReg {
		return regLEDOut0, uint8(ch)
	}
	return regLEDOut1, uint8(ch) - channelsPerReg
}

// encodeMode clears the two bits of channel local in reg and sets the one
// selecting m. Other channels' bits are preserved.
func encodeMode(reg byte, local uint8, m Mode) (byte, error) {
	first := byte(1) << (local * 2)
	second := byte(1) << (local*2 + 1)
	reg &^= first | second
	switch m {
	case ModeOff:
	case ModeOn:
		reg |= first
	case ModePWM:
		reg |= second
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidMode, m)
	}
	return reg, nil
}

func decodeMode(reg byte, local uint8) (Mode, error) {
	first := reg&(1<<(local*2)) != 0
	second := reg&(1<<(local*2+1)) != 0
	switch {
	case !first && !second:
		return ModeOff, nil
	case first && !second:
		return ModeOn, nil
	case !first && second:
		return ModePWM, nil
	}
	return 0, ErrInvalidChannelState
}

// SetMode puts one channel in m with a read-modify-write of its LEDOUT
// register. The read and the write are separate bus transactions: another
// writer on the same register in between is overwritten, and a failed write
// leaves the old value in place.
func (d *Device) SetMode(ch Channel, m Mode) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	if m > ModePWM {
		return fmt.Errorf("%w: %d", ErrInvalidMode, m)
	}
	reg, local := modeReg(ch)
	cur, err := d.readReg(reg)
	if err != nil {
		return err
	}
	next, err := encodeMode(cur, local, m)
	if err != nil {
		return err
	}
	return d.writeReg(reg, next)
}

// SetAllModes overwrites both LEDOUT registers with the bulk pattern for m.
func (d *Device) SetAllModes(m Mode) error {
	b, err := m.bulk()
	if err != nil {
		return err
	}
	if err := d.writeReg(regLEDOut0, b); err != nil {
		return err
	}
	return d.writeReg(regLEDOut1, b)
}

// Mode reads back the driver state of ch.
func (d *Device) Mode(ch Channel) (Mode, error) {
	if err := checkChannel(ch); err != nil {
		return 0, err
	}
	reg, local := modeReg(ch)
	v, err := d.readReg(reg)
	if err != nil {
		return 0, err
	}
	m, err := decodeMode(v, local)
	if err != nil {
		return 0, fmt.Errorf("%w: channel %d ledout=0x%02X", err, ch, v)
	}
	return m, nil
}
