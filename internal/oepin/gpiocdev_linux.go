//go:build linux && (arm || arm64)

package oepin

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

const cdevConsumer = "motodriver-oe"

// openGPIOCdev requests BCM GPIO pin as an output on whichever gpiochip
// exposes the line named "GPIO<pin>" (gpiochip0 on most boards, gpiochip4
// on some Pi 5 kernels). The line starts low, i.e. outputs enabled.
func openGPIOCdev(pin int) (Pin, error) {
	if pin <= 0 {
		return nil, fmt.Errorf("oepin: invalid gpio pin %d", pin)
	}
	name := fmt.Sprintf("GPIO%d", pin)
	chip, offset, err := gpiocdev.FindLine(name)
	if err != nil {
		return nil, fmt.Errorf("oepin: gpio line %q: %w", name, err)
	}
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(cdevConsumer))
	if err != nil {
		return nil, fmt.Errorf("oepin: request %s line %d: %w", chip, offset, err)
	}
	return &cdevPin{line: line}, nil
}

type cdevPin struct {
	line *gpiocdev.Line
}

func (p *cdevPin) Set(level bool) error {
	if p.line == nil {
		return fmt.Errorf("oepin: gpio line closed")
	}
	v := 0
	if level {
		v = 1
	}
	return p.line.SetValue(v)
}

// Close releases the line without changing its level, so the enable state
// set by the last command survives the process.
func (p *cdevPin) Close() error {
	if p.line == nil {
		return nil
	}
	err := p.line.Close()
	p.line = nil
	return err
}
