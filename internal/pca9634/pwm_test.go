package pca9634

import (
	"errors"
	"testing"
)

func TestWriteDuty_RegisterOffset(t *testing.T) {
	d, bus := newTestDevice(t)
	for ch := Channel(0); ch < NumChannels; ch++ {
		if err := d.WriteDuty(ch, uint8(10+ch)); err != nil {
			t.Fatalf("WriteDuty(%d): %v", ch, err)
		}
	}
	for i, w := range bus.writes() {
		if w[0] != byte(i)+2 || w[1] != byte(10+i) {
			t.Fatalf("write %d = %#v", i, w)
		}
	}
	v, err := d.Duty(7)
	if err != nil || v != 17 {
		t.Fatalf("Duty(7)=%d,%v want 17", v, err)
	}
}

func TestOnOffPWM(t *testing.T) {
	d, bus := newTestDevice(t)

	if err := d.On(4); err != nil {
		t.Fatal(err)
	}
	st, err := d.Status(4)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode != ModeOn || st.Duty != 255 {
		t.Fatalf("after On: %+v", st)
	}

	if err := d.SetPWM(4, 77); err != nil {
		t.Fatal(err)
	}
	st, _ = d.Status(4)
	if st.Mode != ModePWM || st.Duty != 77 {
		t.Fatalf("after SetPWM: %+v", st)
	}

	if err := d.Off(4); err != nil {
		t.Fatal(err)
	}
	st, _ = d.Status(4)
	if st.Mode != ModeOff || st.Duty != 0 || st.Channel != 4 {
		t.Fatalf("after Off: %+v", st)
	}
	if bus.regs[regLEDOut0] != 0 {
		t.Fatalf("ledout0 touched: 0x%02X", bus.regs[regLEDOut0])
	}
}

func TestSetPWM_ModeBeforeDuty(t *testing.T) {
	d, bus := newTestDevice(t)
	if err := d.SetPWM(3, 9); err != nil {
		t.Fatal(err)
	}
	w := bus.writes()
	if len(w) != 2 || w[0][0] != regLEDOut0 || w[1] != [2]byte{regPWM0 + 3, 9} {
		t.Fatalf("writes=%v", w)
	}
}

func TestAllOn_Bulk(t *testing.T) {
	d, bus := newTestDevice(t)
	if err := d.AllOn(DriveAll); err != nil {
		t.Fatal(err)
	}
	if bus.regs[regLEDOut0] != AllOn || bus.regs[regLEDOut1] != AllOn {
		t.Fatalf("ledout=0x%02X/0x%02X", bus.regs[regLEDOut0], bus.regs[regLEDOut1])
	}
	for ch := Channel(0); ch < NumChannels; ch++ {
		if bus.regs[dutyReg(ch)] != 255 {
			t.Fatalf("duty[%d]=%d", ch, bus.regs[dutyReg(ch)])
		}
	}

	if err := d.AllOff(); err != nil {
		t.Fatal(err)
	}
	if bus.regs[regLEDOut0] != AllOff || bus.regs[regLEDOut1] != AllOff {
		t.Fatalf("ledout=0x%02X/0x%02X", bus.regs[regLEDOut0], bus.regs[regLEDOut1])
	}
	for ch := Channel(0); ch < NumChannels; ch++ {
		if bus.regs[dutyReg(ch)] != 0 {
			t.Fatalf("duty[%d]=%d", ch, bus.regs[dutyReg(ch)])
		}
	}
}

func TestAllOn_Directional(t *testing.T) {
	cases := []struct {
		dr     Drive
		driven []Channel
		idle   []Channel
	}{
		{DriveForward, []Channel{0, 2, 4, 6}, []Channel{1, 3, 5, 7}},
		{DriveBackward, []Channel{1, 3, 5, 7}, []Channel{0, 2, 4, 6}},
	}
	for _, tc := range cases {
		d, bus := newTestDevice(t)
		if err := d.AllOn(tc.dr); err != nil {
			t.Fatalf("%s: %v", tc.dr, err)
		}
		for _, ch := range tc.driven {
			st, err := d.Status(ch)
			if err != nil {
				t.Fatal(err)
			}
			if st.Mode != ModePWM || st.Duty != 255 {
				t.Fatalf("%s ch=%d %+v", tc.dr, ch, st)
			}
		}
		for _, ch := range tc.idle {
			if m, _ := d.Mode(ch); m != ModeOff || bus.regs[dutyReg(ch)] != 0 {
				t.Fatalf("%s ch=%d touched", tc.dr, ch)
			}
		}
	}
}

func TestAllOn_InvalidDrive(t *testing.T) {
	d, bus := newTestDevice(t)
	if err := d.AllOn(Drive(7)); err == nil {
		t.Fatalf("expected error")
	}
	if len(bus.ops) != 0 {
		t.Fatalf("unexpected bus traffic")
	}
}

func TestDuty_InvalidChannel(t *testing.T) {
	d, _ := newTestDevice(t)
	if _, err := d.Duty(NumChannels); !errors.Is(err, ErrInvalidChannel) {
		t.Fatalf("err=%v", err)
	}
	if err := d.WriteDuty(NumChannels, 1); !errors.Is(err, ErrInvalidChannel) {
		t.Fatalf("err=%v", err)
	}
}
