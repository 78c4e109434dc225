package pca9634

import (
	"errors"
	"testing"
	"time"
)

type fakePin struct {
	levels []bool
	err    error
}

func (p *fakePin) Set(level bool) error {
	if p.err != nil {
		return p.err
	}
	p.levels = append(p.levels, level)
	return nil
}

func TestBegin_Sequence(t *testing.T) {
	slept := stubSleep(t)
	pin := &fakePin{}
	bus := &fakeBus{}
	d, err := New(bus, Config{Address: testAddr, Enable: pin})
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if len(pin.levels) != 1 || pin.levels[0] {
		t.Fatalf("oe levels=%v want [false]", pin.levels)
	}
	w := bus.writes()
	if len(w) != 2 || w[0] != [2]byte{0x00, 0x01} || w[1] != [2]byte{0x01, 0x14} {
		t.Fatalf("writes=%v", w)
	}
	want := []time.Duration{10 * time.Millisecond, 500 * time.Microsecond, 10 * time.Millisecond}
	if len(*slept) != len(want) {
		t.Fatalf("sleeps=%v", *slept)
	}
	for i := range want {
		if (*slept)[i] != want[i] {
			t.Fatalf("sleep[%d]=%v want %v", i, (*slept)[i], want[i])
		}
	}
}

func TestBegin_WithoutPin(t *testing.T) {
	stubSleep(t)
	d, bus := newTestDevice(t)
	if err := d.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if len(bus.writes()) != 2 {
		t.Fatalf("writes=%v", bus.writes())
	}
}

func TestSoftReset_Bytes(t *testing.T) {
	d, bus := newTestDevice(t)
	if err := d.SoftReset(); err != nil {
		t.Fatal(err)
	}
	if len(bus.ops) != 1 {
		t.Fatalf("ops=%d", len(bus.ops))
	}
	op := bus.ops[0]
	if op.addr != 0x03 || len(op.w) != 2 || op.w[0] != 0xA5 || op.w[1] != 0x5A || op.nr != 0 {
		t.Fatalf("op=%+v", op)
	}

	bus.failAfter = 1
	if err := d.SoftReset(); !errors.Is(err, ErrBus) {
		t.Fatalf("err=%v want ErrBus", err)
	}
}

func TestSetEnabled(t *testing.T) {
	d, _ := newTestDevice(t)
	if err := d.SetEnabled(true); !errors.Is(err, ErrNoEnablePin) {
		t.Fatalf("err=%v want ErrNoEnablePin", err)
	}

	pin := &fakePin{}
	d, err := New(&fakeBus{}, Config{Address: testAddr, Enable: pin})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetEnabled(false); err != nil {
		t.Fatal(err)
	}
	if err := d.SetEnabled(true); err != nil {
		t.Fatal(err)
	}
	if len(pin.levels) != 2 || !pin.levels[0] || pin.levels[1] {
		t.Fatalf("levels=%v want [true false]", pin.levels)
	}

	pin.err = errors.New("line busy")
	if err := d.SetEnabled(true); err == nil {
		t.Fatalf("expected error")
	}
}
