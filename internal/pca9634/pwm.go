package pca9634

import "fmt"

// Drive selects which channels AllOn energises.
type Drive uint8

const (
	// DriveAll switches every channel fully on through the bulk LEDOUT write.
	DriveAll Drive = iota
	// DriveForward drives the even channels (0, 2, 4, 6) of each half-bridge
	// pair to full PWM duty.
	DriveForward
	// DriveBackward drives the odd channels (1, 3, 5, 7).
	DriveBackward
)

func (dr Drive) String() string {
	switch dr {
	case DriveAll:
		return "all"
	case DriveForward:
		return "forward"
	case DriveBackward:
		return "backward"
	default:
		return fmt.Sprintf("Drive(%d)", uint8(dr))
	}
}

// ChannelStatus is a snapshot of one channel read from the chip.
type ChannelStatus struct {
	Channel Channel
	Mode    Mode
	Duty    uint8
}

func dutyReg(ch Channel) byte { return regPWM0 + byte(ch) }

// WriteDuty writes the PWM duty register of ch without touching its mode.
func (d *Device) WriteDuty(ch Channel, v uint8) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	return d.writeReg(dutyReg(ch), v)
}

// Duty reads back the PWM duty register of ch.
func (d *Device) Duty(ch Channel) (uint8, error) {
	if err := checkChannel(ch); err != nil {
		return 0, err
	}
	return d.readReg(dutyReg(ch))
}

// On switches ch fully on and parks its duty at 255.
func (d *Device) On(ch Channel) error {
	if err := d.SetMode(ch, ModeOn); err != nil {
		return err
	}
	return d.WriteDuty(ch, dutyFull)
}

// Off switches ch off and clears its duty.
func (d *Device) Off(ch Channel) error {
	if err := d.SetMode(ch, ModeOff); err != nil {
		return err
	}
	return d.WriteDuty(ch, 0)
}

// SetPWM puts ch under PWM control at duty v.
func (d *Device) SetPWM(ch Channel, v uint8) error {
	if err := d.SetMode(ch, ModePWM); err != nil {
		return err
	}
	return d.WriteDuty(ch, v)
}

func (d *Device) AllOn(dr Drive) error {
	switch dr {
	case DriveAll:
		if err := d.SetAllModes(ModeOn); err != nil {
			return err
		}
		return d.writeAllDuty(dutyFull)
	case DriveForward, DriveBackward:
		first := Channel(0)
		if dr == DriveBackward {
			first = 1
		}
		for ch := first; ch < NumChannels; ch += 2 {
			if err := d.SetPWM(ch, dutyFull); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("pca9634: invalid drive %d", dr)
}

func (d *Device) AllOff() error {
	if err := d.SetAllModes(ModeOff); err != nil {
		return err
	}
	return d.writeAllDuty(0)
}

func (d *Device) writeAllDuty(v uint8) error {
	for ch := Channel(0); ch < NumChannels; ch++ {
		if err := d.writeReg(dutyReg(ch), v); err != nil {
			return err
		}
	}
	return nil
}

// Status reads mode and duty of ch.
func (d *Device) Status(ch Channel) (ChannelStatus, error) {
	m, err := d.Mode(ch)
	if err != nil {
		return ChannelStatus{}, err
	}
	duty, err := d.Duty(ch)
	if err != nil {
		return ChannelStatus{}, err
	}
	return ChannelStatus{Channel: ch, Mode: m, Duty: duty}, nil
}
