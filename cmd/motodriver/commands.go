package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"motodriver/internal/pca9634"
	"motodriver/internal/stepper"
)

func newBeginCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "begin",
		Short: "Run the chip power-up sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(func(s *session) error {
				if err := s.dev.Begin(); err != nil {
					return err
				}
				o.logf("chip initialised")
				return nil
			})
		},
	}
}

func newResetCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Send the software reset sequence to every PCA9634 on the bus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(func(s *session) error { return s.dev.SoftReset() })
		},
	}
}

func newEnableCmd(o *rootOpts, on bool) *cobra.Command {
	use, short := "enable", "Enable all outputs through the OE pin"
	if !on {
		use, short = "disable", "Disable all outputs through the OE pin (state is kept)"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(func(s *session) error { return s.dev.SetEnabled(on) })
		},
	}
}

func newOnCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "on <channel>",
		Short: "Switch a channel fully on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			return o.run(func(s *session) error { return s.dev.On(ch) })
		},
	}
}

func newOffCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "off <channel>",
		Short: "Switch a channel off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			return o.run(func(s *session) error { return s.dev.Off(ch) })
		},
	}
}

func newPWMCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "pwm <channel> <duty>",
		Short: "Put a channel under PWM control at duty 0..255",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			duty, err := parseDuty(args[1])
			if err != nil {
				return err
			}
			return o.run(func(s *session) error { return s.dev.SetPWM(ch, duty) })
		},
	}
}

func newAllOnCmd(o *rootOpts) *cobra.Command {
	var forward, backward bool
	cmd := &cobra.Command{
		Use:   "all-on",
		Short: "Switch every channel on, or one side of each half-bridge pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dr := pca9634.DriveAll
			switch {
			case forward:
				dr = pca9634.DriveForward
			case backward:
				dr = pca9634.DriveBackward
			}
			return o.run(func(s *session) error {
				o.logf("all-on drive=%s", dr)
				return s.dev.AllOn(dr)
			})
		},
	}
	cmd.Flags().BoolVar(&forward, "forward", false, "drive only even channels (0,2,4,6) at full PWM")
	cmd.Flags().BoolVar(&backward, "backward", false, "drive only odd channels (1,3,5,7) at full PWM")
	cmd.MarkFlagsMutuallyExclusive("forward", "backward")
	return cmd
}

func newAllOffCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "all-off",
		Short: "Switch every channel off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(func(s *session) error { return s.dev.AllOff() })
		},
	}
}

func newFadeCmd(o *rootOpts, in bool) *cobra.Command {
	var (
		duration   time.Duration
		brightness uint8
	)
	use, short, def := "fade-in <channel>", "Ramp a channel from 0 up to --brightness", uint8(255)
	if !in {
		use, short, def = "fade-out <channel>", "Ramp a channel from its current duty down to --brightness", 0
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			return o.run(func(s *session) error {
				d := duration
				if d <= 0 {
					d = s.cfg.Fade.Duration
				}
				o.logf("fade channel=%d duration=%s brightness=%d", ch, d, brightness)
				if in {
					return s.dev.FadeIn(cmd.Context(), ch, d, brightness)
				}
				return s.dev.FadeOut(cmd.Context(), ch, d, brightness)
			})
		},
	}
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "ramp duration (default fade.duration from config)")
	cmd.Flags().Uint8VarP(&brightness, "brightness", "b", def, "target duty 0..255")
	return cmd
}

func newStatusCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "status [channel]",
		Short: "Print mode and duty of one or all channels",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chans := make([]pca9634.Channel, 0, pca9634.NumChannels)
			if len(args) == 1 {
				ch, err := parseChannel(args[0])
				if err != nil {
					return err
				}
				chans = append(chans, ch)
			} else {
				for ch := pca9634.Channel(0); ch < pca9634.NumChannels; ch++ {
					chans = append(chans, ch)
				}
			}
			return o.run(func(s *session) error {
				out := cmd.OutOrStdout()
				for _, ch := range chans {
					st, err := s.dev.Status(ch)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "ch=%d mode=%s duty=%d\n", st.Channel, st.Mode, st.Duty)
				}
				return nil
			})
		},
	}
}

func newStepCmd(o *rootOpts) *cobra.Command {
	var (
		rpm, steps int
		release    bool
	)
	cmd := &cobra.Command{
		Use:   "step <count>",
		Short: "Move the stepper by a signed step count (use -- before negative counts)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return o.run(func(s *session) error {
				if rpm <= 0 {
					rpm = s.cfg.Stepper.SpeedRPM
				}
				if steps <= 0 {
					steps = s.cfg.Stepper.StepsPerRev
				}
				seq := stepper.New(s.dev, nil)
				if err := seq.ConfigureSpeed(rpm, steps); err != nil {
					return err
				}
				w := s.wiring()
				if count != 0 {
					dir := stepper.Forward
					if count < 0 {
						dir = stepper.Backward
					}
					synced, err := seq.SyncFromCoils(w, dir)
					if err != nil {
						return err
					}
					o.logf("step resume phase=%d synced=%t", seq.State.Index, synced)
				}
				o.logf("step count=%d rpm=%d steps_per_rev=%d delay_us=%d wiring=%v", count, rpm, steps, seq.State.StepDelay, w)
				start := time.Now()
				if err := seq.Move(cmd.Context(), count, w); err != nil {
					return err
				}
				o.logf("step done index=%d dir=%s took=%s", seq.State.Index, seq.State.Direction, time.Since(start))
				if release {
					return seq.Release()
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&rpm, "rpm", 0, "speed in revolutions per minute (default stepper.speed_rpm)")
	cmd.Flags().IntVar(&steps, "steps", 0, "steps per revolution (default stepper.steps_per_rev)")
	cmd.Flags().BoolVar(&release, "release", false, "switch the coils off after the move")
	return cmd
}
