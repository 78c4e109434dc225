package main

import (
	"fmt"
	"log"

	"tinygo.org/x/drivers"

	"motodriver/internal/config"
	"motodriver/internal/i2c"
	"motodriver/internal/oepin"
	"motodriver/internal/pca9634"
	"motodriver/internal/stepper"
)

type busCloser interface {
	drivers.I2C
	Close() error
}

var (
	openBusFn = openBus
	openPinFn = oepin.Open
)

func openBus(cfg config.BusConfig) (busCloser, error) {
	if cfg.Backend == config.BusPeriph {
		p, err := i2c.OpenPeriph(cfg.Name)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	b, err := i2c.Open(cfg.Path)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// session holds everything one command needs: the open bus, the OE pin and
// the chip bound to both.
type session struct {
	cfg config.Config
	bus busCloser
	pin oepin.Pin
	dev *pca9634.Device
}

func openSession(cfg config.Config) (*session, error) {
	bus, err := openBusFn(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("bus open failed: %w", err)
	}
	pin, err := openPinFn(cfg.Enable.Backend, cfg.Enable.Pin)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("enable pin open failed: %w", err)
	}

	dev, err := pca9634.New(bus, pca9634.Config{Address: cfg.Chip.Address, Enable: pin})
	if err != nil {
		if pin != nil {
			_ = pin.Close()
		}
		_ = bus.Close()
		return nil, err
	}
	return &session{cfg: cfg, bus: bus, pin: pin, dev: dev}, nil
}

func (s *session) wiring() stepper.Wiring {
	var w stepper.Wiring
	for i, ch := range s.cfg.Stepper.Channels {
		w[i] = pca9634.Channel(ch)
	}
	return w
}

func (s *session) Close() {
	if s.pin != nil {
		if err := s.pin.Close(); err != nil {
			log.Printf("enable pin close failed: %v", err)
		}
	}
	if err := s.bus.Close(); err != nil {
		log.Printf("bus close failed: %v", err)
	}
}
