// Package stepper sequences a 4-phase, 2-coil stepper motor whose windings
// hang off four PWM channels of a PCA9634.
//
// The Sequencer is a state machine ticked with a microsecond timestamp:
// AdvanceIfDue takes at most one step per call and never blocks, so callers
// can fold it into their own loop. Move is the blocking convenience built on
// top of it.
package stepper

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"motodriver/internal/pca9634"
)

var (
	ErrNotConfigured = errors.New("stepper: speed not configured")
	ErrNotWired      = errors.New("stepper: no move armed")
)

type Direction uint8

const (
	Backward Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// Wiring lists the channels connected to coil terminals pin1..pin4.
type Wiring [4]pca9634.Channel

// Coils is the part of the PWM engine the sequencer drives.
// *pca9634.Device implements it.
type Coils interface {
	SetPWM(ch pca9634.Channel, v uint8) error
	Off(ch pca9634.Channel) error
	Duty(ch pca9634.Channel) (uint8, error)
}

// Clock returns microseconds since an arbitrary fixed origin.
type Clock func() int64

var origin = time.Now()

// MonotonicMicros is the default Clock.
func MonotonicMicros() int64 { return time.Since(origin).Microseconds() }

// State is the complete motion state of one motor.
type State struct {
	NumberSteps    int   // steps per revolution
	StepDelay      int64 // microseconds between steps
	StepsRemaining int
	Index          int // position within the revolution, 0..NumberSteps-1
	Direction      Direction
	LastStep       int64 // clock value of the last step
}

type Sequencer struct {
	out    Coils
	now    Clock
	wiring Wiring
	wired  bool
	State  State
}

// New returns a Sequencer writing to out. A nil clock selects MonotonicMicros.
func New(out Coils, clock Clock) *Sequencer {
	if clock == nil {
		clock = MonotonicMicros
	}
	return &Sequencer{out: out, now: clock}
}

// ConfigureSpeed sets the revolution size and derives the step delay.
// Index is folded into the new revolution.
func (s *Sequencer) ConfigureSpeed(rpm, stepsPerRev int) error {
	if rpm <= 0 || stepsPerRev <= 0 {
		return fmt.Errorf("%w: rpm=%d steps=%d", pca9634.ErrDivisionPrecondition, rpm, stepsPerRev)
	}
	s.State.NumberSteps = stepsPerRev
	s.State.Index %= stepsPerRev
	s.State.StepDelay = int64(60 * 1000 * 1000 / stepsPerRev / rpm)
	return nil
}

// Arm loads a move of |count| steps on wiring w. A positive count turns
// forward and a negative one backward; zero keeps the previous direction.
func (s *Sequencer) Arm(count int, w Wiring) error {
	if s.State.NumberSteps <= 0 {
		return ErrNotConfigured
	}
	for _, ch := range w {
		if ch >= pca9634.NumChannels {
			return fmt.Errorf("%w: %d", pca9634.ErrInvalidChannel, ch)
		}
	}
	s.wiring = w
	s.wired = true
	if count < 0 {
		s.State.StepsRemaining = -count
		s.State.Direction = Backward
	} else {
		s.State.StepsRemaining = count
		if count > 0 {
			s.State.Direction = Forward
		}
	}
	return nil
}

// Done reports whether the armed move has finished.
func (s *Sequencer) Done() bool { return s.State.StepsRemaining <= 0 }

// AdvanceIfDue takes one step when a move is pending and at least StepDelay
// microseconds have passed since the previous one. The step is committed to
// State before the coils are written, so a transport error leaves the
// position counted and the phase possibly half applied.
func (s *Sequencer) AdvanceIfDue(now int64) (bool, error) {
	st := &s.State
	if st.StepsRemaining <= 0 || now-st.LastStep < st.StepDelay {
		return false, nil
	}
	st.LastStep = now
	if st.Direction == Forward {
		st.Index++
		if st.Index == st.NumberSteps {
			st.Index = 0
		}
	} else {
		if st.Index == 0 {
			st.Index = st.NumberSteps
		}
		st.Index--
	}
	st.StepsRemaining--
	return true, s.applyPhase(st.Index % 4)
}

// Move arms count steps and polls the clock until they are all taken.
func (s *Sequencer) Move(ctx context.Context, count int, w Wiring) error {
	if err := s.Arm(count, w); err != nil {
		return err
	}
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		stepped, err := s.AdvanceIfDue(s.now())
		if err != nil {
			return err
		}
		if !stepped {
			runtime.Gosched()
		}
	}
	return nil
}
