package pca9634

import (
	"context"
	"fmt"
	"time"
)

var sleep = time.Sleep

// Ramps apportion the duration linearly per duty step: the interval is
// duration/delta in whole milliseconds, rounded down. Both calls block for
// the length of the ramp; ctx is checked between steps and a cancelled ramp
// leaves the channel in PWM mode at the last written duty.

// FadeIn ramps ch from duty 0 up to target. A target of 255 hands the channel
// over to full-on mode at the end.
func (d *Device) FadeIn(ctx context.Context, ch Channel, duration time.Duration, target uint8) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	if target == 0 {
		return fmt.Errorf("%w: fade in to brightness 0", ErrDivisionPrecondition)
	}
	if err := d.SetMode(ch, ModePWM); err != nil {
		return err
	}
	interval := stepInterval(duration, int(target))
	for i := 0; i <= int(target); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.WriteDuty(ch, uint8(i)); err != nil {
			return err
		}
		sleep(interval)
	}
	if target == dutyFull {
		return d.SetMode(ch, ModeOn)
	}
	return nil
}

// FadeOut ramps ch from its current duty down to target. A target of 0 turns
// the channel off at the end. The current duty must be above target.
func (d *Device) FadeOut(ctx context.Context, ch Channel, duration time.Duration, target uint8) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	cur, err := d.Duty(ch)
	if err != nil {
		return err
	}
	if cur <= target {
		return fmt.Errorf("%w: fade out from duty %d to %d", ErrDivisionPrecondition, cur, target)
	}
	if err := d.SetMode(ch, ModePWM); err != nil {
		return err
	}
	interval := stepInterval(duration, int(cur)-int(target))
	for i := int(cur); i >= int(target); i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.WriteDuty(ch, uint8(i)); err != nil {
			return err
		}
		sleep(interval)
	}
	if target == 0 {
		return d.SetMode(ch, ModeOff)
	}
	return nil
}

func stepInterval(duration time.Duration, delta int) time.Duration {
	return time.Duration(duration.Milliseconds()/int64(delta)) * time.Millisecond
}
