package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bus     BusConfig     `yaml:"bus"`
	Chip    ChipConfig    `yaml:"chip"`
	Enable  EnableConfig  `yaml:"enable"`
	Fade    FadeConfig    `yaml:"fade"`
	Stepper StepperConfig `yaml:"stepper"`
}

type BusConfig struct {
	// Backend is "i2cdev" (Linux /dev/i2c-N) or "periph" (periph.io registry).
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Name    string `yaml:"name"`
}

type ChipConfig struct {
	Address uint16 `yaml:"address"`
}

type EnableConfig struct {
	// Backend is "none", "gpiocdev" or "rpio".
	Backend string `yaml:"backend"`
	// Pin is BCM GPIO numbering.
	Pin int `yaml:"pin"`
}

type FadeConfig struct {
	Duration time.Duration `yaml:"duration"`
}

type StepperConfig struct {
	SpeedRPM    int     `yaml:"speed_rpm"`
	StepsPerRev int     `yaml:"steps_per_rev"`
	Channels    []uint8 `yaml:"channels"`
}

const (
	BusI2CDev = "i2cdev"
	BusPeriph = "periph"
)

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	cfg.Bus.Backend = strings.ToLower(strings.TrimSpace(cfg.Bus.Backend))
	if cfg.Bus.Backend == "" {
		cfg.Bus.Backend = BusI2CDev
	}
	switch cfg.Bus.Backend {
	case BusI2CDev:
		if cfg.Bus.Path == "" {
			cfg.Bus.Path = "/dev/i2c-1"
		}
	case BusPeriph:
	default:
		return Config{}, fmt.Errorf("bus.backend must be %q or %q", BusI2CDev, BusPeriph)
	}

	if cfg.Chip.Address == 0 {
		return Config{}, fmt.Errorf("chip.address is required")
	}
	if cfg.Chip.Address > 0x7F {
		return Config{}, fmt.Errorf("chip.address must be a 7-bit address")
	}

	cfg.Enable.Backend = strings.ToLower(strings.TrimSpace(cfg.Enable.Backend))
	if cfg.Enable.Backend == "" {
		cfg.Enable.Backend = "none"
	}
	switch cfg.Enable.Backend {
	case "none":
	case "gpiocdev", "rpio":
		if cfg.Enable.Pin <= 0 {
			return Config{}, fmt.Errorf("enable.pin is required when enable.backend is %s", cfg.Enable.Backend)
		}
	default:
		return Config{}, fmt.Errorf("enable.backend must be none, gpiocdev or rpio")
	}

	if cfg.Fade.Duration <= 0 {
		cfg.Fade.Duration = 1 * time.Second
	}

	if cfg.Stepper.SpeedRPM == 0 {
		cfg.Stepper.SpeedRPM = 60
	}
	if cfg.Stepper.StepsPerRev == 0 {
		cfg.Stepper.StepsPerRev = 200
	}
	if cfg.Stepper.SpeedRPM < 0 || cfg.Stepper.StepsPerRev < 0 {
		return Config{}, fmt.Errorf("stepper.speed_rpm and stepper.steps_per_rev must be > 0")
	}
	if len(cfg.Stepper.Channels) == 0 {
		cfg.Stepper.Channels = []uint8{0, 1, 2, 3}
	}
	if len(cfg.Stepper.Channels) != 4 {
		return Config{}, fmt.Errorf("stepper.channels must list exactly 4 channels")
	}
	for _, ch := range cfg.Stepper.Channels {
		if ch > 7 {
			return Config{}, fmt.Errorf("stepper.channels entries must be 0..7")
		}
	}

	return cfg, nil
}
