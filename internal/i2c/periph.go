package i2c

import (
	"fmt"
	"sync"

	pi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	hostOnce sync.Once
	hostErr  error

	hostInit = func() error {
		_, err := host.Init()
		return err
	}
	openPeriphFn = i2creg.Open
)

// Periph is an I2C bus opened through the periph.io registry. Its Tx has the
// drivers.I2C shape, so it plugs into the PCA9634 driver unchanged.
type Periph struct {
	pi2c.BusCloser
	name string
}

// OpenPeriph initialises the periph host drivers once and opens the named
// bus. An empty name selects the first registered bus.
func OpenPeriph(name string) (*Periph, error) {
	hostOnce.Do(func() { hostErr = hostInit() })
	if hostErr != nil {
		return nil, fmt.Errorf("i2c: periph host init: %w", hostErr)
	}
	bc, err := openPeriphFn(name)
	if err != nil {
		return nil, fmt.Errorf("i2c: periph open %q: %w", name, err)
	}
	return &Periph{BusCloser: bc, name: name}, nil
}

func (p *Periph) Tx(addr uint16, w, r []byte) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	return p.BusCloser.Tx(addr, w, r)
}

func (p *Periph) Close() error {
	if p == nil || p.BusCloser == nil {
		return nil
	}
	return p.BusCloser.Close()
}
