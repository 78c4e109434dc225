package stepper

import (
	"fmt"

	"motodriver/internal/pca9634"
)

const dutyEnergised = 250

// phases is the full-step commutation table in pin1..pin4 order.
var phases = [4][4]uint8{
	{dutyEnergised, 0, dutyEnergised, 0},
	{0, dutyEnergised, dutyEnergised, 0},
	{0, dutyEnergised, 0, dutyEnergised},
	{dutyEnergised, 0, 0, dutyEnergised},
}

// coilOrder returns the channels of w in the order a phase row is applied.
// Backward swaps the roles of pin1/pin4 and pin2/pin3.
func coilOrder(w Wiring, dir Direction) Wiring {
	if dir == Forward {
		return w
	}
	return Wiring{w[3], w[2], w[1], w[0]}
}

func (s *Sequencer) applyPhase(phase int) error {
	order := coilOrder(s.wiring, s.State.Direction)
	row := phases[phase]
	for i, ch := range order {
		if err := s.out.SetPWM(ch, row[i]); err != nil {
			return err
		}
	}
	return nil
}

// SyncFromCoils reads the duties on w and, when they hold a phase of the
// table as dir would have applied it, sets Index to that phase. A process
// that drove the coils earlier can then continue the sequence instead of
// restarting at phase 0. Only the phase is recoverable, not the position
// within the revolution. It reports whether a phase matched; Index is left
// alone otherwise.
func (s *Sequencer) SyncFromCoils(w Wiring, dir Direction) (bool, error) {
	if s.State.NumberSteps <= 0 {
		return false, ErrNotConfigured
	}
	order := coilOrder(w, dir)
	var got [4]uint8
	for i, ch := range order {
		if ch >= pca9634.NumChannels {
			return false, fmt.Errorf("%w: %d", pca9634.ErrInvalidChannel, ch)
		}
		v, err := s.out.Duty(ch)
		if err != nil {
			return false, err
		}
		got[i] = v
	}
	for p, row := range phases {
		if got == row && p < s.State.NumberSteps {
			s.State.Index = p
			return true, nil
		}
	}
	return false, nil
}

// Release switches the wired channels off so the coils stop holding torque.
func (s *Sequencer) Release() error {
	if !s.wired {
		return ErrNotWired
	}
	for _, ch := range s.wiring {
		if err := s.out.Off(ch); err != nil {
			return err
		}
	}
	return nil
}
