package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config is the complete cpuglow configuration. The gradient is fixed and
// deliberately absent here.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Baud rate of the device link.
	Baud int `yaml:"baud" mapstructure:"baud"`

	// ReadTimeout bounds how long opening the port may block.
	ReadTimeout time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`

	// Interval is the CPU sampling window, sent to the device in ms.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Warmup is the delay after opening the link before the first frame.
	Warmup time.Duration `yaml:"warmup" mapstructure:"warmup"`

	// Backoff is the delay before reopening a failed link.
	Backoff time.Duration `yaml:"backoff" mapstructure:"backoff"`

	// AnnounceEvery is how many color frames go out between interval frames.
	AnnounceEvery int `yaml:"announce_every" mapstructure:"announce_every"`

	// LockDir holds per-device lock directories. Empty means the system temp dir.
	LockDir string `yaml:"lock_dir" mapstructure:"lock_dir"`

	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`

	// Verbose prints a status line for every color frame.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns a Config with the timings the device firmware expects.
func DefaultConfig() *Config {
	return &Config{
		Version:       CurrentConfigVersion,
		Baud:          9600,
		ReadTimeout:   time.Second,
		Interval:      time.Second,
		Warmup:        5 * time.Second,
		Backoff:       5 * time.Second,
		AnnounceEvery: 10,
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
