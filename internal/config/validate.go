package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/rileyhilliard/cpuglow/internal/protocol"
)

// MaxInterval is the longest sampling interval the wire format can carry.
const MaxInterval = protocol.MaxIntervalMillis * time.Millisecond

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but cpuglow only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade cpuglow or lower the version field.")
	}

	if err := validateInterval(cfg.Interval); err != nil {
		return errors.New(errors.ErrConfig, err.Error(),
			fmt.Sprintf("Use a duration between 1ms and %s, like 1s or 500ms.", MaxInterval))
	}

	if cfg.Baud <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Baud rate must be positive, got %d", cfg.Baud),
			"The device firmware expects 9600.")
	}

	for name, d := range map[string]time.Duration{
		"read_timeout": cfg.ReadTimeout,
		"warmup":       cfg.Warmup,
		"backoff":      cfg.Backoff,
	} {
		if d < 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' can't be negative (got %s)", name, d),
				"Use 0 to disable the delay.")
		}
	}

	if cfg.AnnounceEvery < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("'announce_every' must be at least 1, got %d", cfg.AnnounceEvery),
			"The default of 10 re-sends the interval every 10 colors.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.New(errors.ErrConfig, err.Error(),
			"Check the 'output' section of your config.")
	}

	return nil
}

// validateInterval keeps the interval inside the 14-bit wire field.
func validateInterval(d time.Duration) error {
	if d < time.Millisecond {
		return fmt.Errorf("interval %s is too short", d)
	}
	if d > MaxInterval {
		return fmt.Errorf("interval %s won't fit in the device protocol (max %s)", d, MaxInterval)
	}
	return nil
}

func validateOutput(out OutputConfig) error {
	switch out.Color {
	case "", "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("output.color '%s' isn't valid, use auto, always, or never", out.Color)
	}
}
