//go:build linux

package oepin

import (
	"fmt"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"
)

// rpio maps /dev/gpiomem once per process.
var (
	rpioMu   sync.Mutex
	rpioRefs int
)

func openRPIO(pin int) (Pin, error) {
	if pin <= 0 {
		return nil, fmt.Errorf("oepin: invalid gpio pin %d", pin)
	}
	rpioMu.Lock()
	defer rpioMu.Unlock()
	if rpioRefs == 0 {
		if err := rpio.Open(); err != nil {
			return nil, fmt.Errorf("oepin: rpio open: %w", err)
		}
	}
	rpioRefs++

	p := rpio.Pin(pin)
	p.Output()
	p.Low()
	return &rpioPin{pin: p}, nil
}

type rpioPin struct {
	pin    rpio.Pin
	closed bool
}

func (p *rpioPin) Set(level bool) error {
	if p.closed {
		return fmt.Errorf("oepin: rpio pin %d closed", p.pin)
	}
	if level {
		p.pin.High()
	} else {
		p.pin.Low()
	}
	return nil
}

func (p *rpioPin) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	rpioMu.Lock()
	defer rpioMu.Unlock()
	rpioRefs--
	if rpioRefs == 0 {
		return rpio.Close()
	}
	return nil
}
