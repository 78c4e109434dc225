package pca9634

import (
	"errors"
	"testing"
	"time"
)

type txOp struct {
	addr uint16
	w    []byte
	nr   int
}

// fakeBus emulates the PCA9634 register file behind drivers.I2C.
type fakeBus struct {
	regs [0x20]byte
	ops  []txOp

	// failAfter makes the Nth transfer (1-based) and all later ones fail.
	failAfter int
}

var errFakeBus = errors.New("nack")

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	f.ops = append(f.ops, txOp{addr: addr, w: append([]byte(nil), w...), nr: len(r)})
	if f.failAfter > 0 && len(f.ops) >= f.failAfter {
		return errFakeBus
	}
	if addr != testAddr {
		return nil
	}
	switch {
	case len(w) == 1 && len(r) == 1:
		r[0] = f.regs[w[0]&regAddrMask]
	case len(w) == 2 && len(r) == 0:
		f.regs[w[0]&regAddrMask] = w[1]
	}
	return nil
}

// writes returns the register writes addressed to the chip, in order.
func (f *fakeBus) writes() [][2]byte {
	var out [][2]byte
	for _, op := range f.ops {
		if op.addr == testAddr && len(op.w) == 2 && op.nr == 0 {
			out = append(out, [2]byte{op.w[0], op.w[1]})
		}
	}
	return out
}

const testAddr = 0x15

func newTestDevice(t *testing.T) (*Device, *fakeBus) {
	t.Helper()
	bus := &fakeBus{}
	d, err := New(bus, Config{Address: testAddr})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, bus
}

// stubSleep records every requested sleep instead of blocking.
func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var slept []time.Duration
	old := sleep
	sleep = func(d time.Duration) { slept = append(slept, d) }
	t.Cleanup(func() { sleep = old })
	return &slept
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, Config{Address: testAddr}); err == nil {
		t.Fatalf("expected error for nil bus")
	}
	for _, a := range []uint16{0, 0x80} {
		if _, err := New(&fakeBus{}, Config{Address: a}); err == nil {
			t.Fatalf("expected error for addr 0x%X", a)
		}
	}
	d, err := New(&fakeBus{}, Config{Address: testAddr})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Address() != testAddr {
		t.Fatalf("addr=0x%X", d.Address())
	}
}

func TestReadReg_MasksAutoIncrementBits(t *testing.T) {
	d, bus := newTestDevice(t)
	if _, err := d.readReg(0xEC); err != nil {
		t.Fatalf("readReg: %v", err)
	}
	if got := bus.ops[0].w[0]; got != regLEDOut0 {
		t.Fatalf("control byte=0x%02X want 0x%02X", got, regLEDOut0)
	}
}

func TestBusError_Wrapping(t *testing.T) {
	d, bus := newTestDevice(t)
	bus.failAfter = 1

	err := d.WriteDuty(3, 10)
	if !errors.Is(err, ErrBus) {
		t.Fatalf("err=%v want ErrBus", err)
	}
	if !errors.Is(err, errFakeBus) {
		t.Fatalf("err=%v does not unwrap to transport cause", err)
	}
	var be *BusError
	if !errors.As(err, &be) {
		t.Fatalf("err=%T want *BusError", err)
	}
	if be.Op != "write" || be.Reg != regPWM0+3 || be.Addr != testAddr {
		t.Fatalf("BusError=%+v", be)
	}
}
