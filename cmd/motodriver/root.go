package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"motodriver/internal/config"
	"motodriver/internal/pca9634"
)

type rootOpts struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	root := &cobra.Command{
		Use:   "motodriver",
		Short: "Drive an SBC-MotoDriver3 (PCA9634) board over I2C",
		Long: `motodriver controls the eight PWM outputs of a PCA9634 LED/PWM controller
and sequences a 4-phase stepper motor on four of them.

Examples:
  motodriver begin                        # power-up sequence
  motodriver on 3                         # channel 3 fully on
  motodriver pwm 5 128                    # channel 5 at half duty
  motodriver fade-in 0 --duration 2s      # ramp channel 0 to full
  motodriver all-on --forward             # even channels of each pair
  motodriver step 200 --rpm 30            # one revolution forward
  motodriver step -- -50                  # 50 steps backward
  motodriver status                       # mode and duty of every channel`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "./motodriver.yaml", "Path to YAML config")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newBeginCmd(opts),
		newResetCmd(opts),
		newEnableCmd(opts, true),
		newEnableCmd(opts, false),
		newOnCmd(opts),
		newOffCmd(opts),
		newPWMCmd(opts),
		newAllOnCmd(opts),
		newAllOffCmd(opts),
		newFadeCmd(opts, true),
		newFadeCmd(opts, false),
		newStatusCmd(opts),
		newStepCmd(opts),
	)
	return root
}

// run loads the config, opens a session, hands it to fn and closes it again.
func (o *rootOpts) run(fn func(s *session) error) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	if o.verbose {
		log.Printf("motodriver bus=%s addr=0x%02X enable=%s", busLabel(cfg.Bus), cfg.Chip.Address, cfg.Enable.Backend)
	}
	return fn(s)
}

func (o *rootOpts) logf(format string, args ...any) {
	if o.verbose {
		log.Printf(format, args...)
	}
}

func busLabel(b config.BusConfig) string {
	if b.Backend == config.BusPeriph {
		return "periph:" + b.Name
	}
	return b.Path
}

func parseChannel(s string) (pca9634.Channel, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n >= pca9634.NumChannels {
		return 0, fmt.Errorf("invalid channel %q (want 0..%d)", s, pca9634.NumChannels-1)
	}
	return pca9634.Channel(n), nil
}

func parseDuty(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid duty %q (want 0..255)", s)
	}
	return uint8(n), nil
}
