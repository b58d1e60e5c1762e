package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk form. Durations are written as strings like "5s"
// so the file stays readable and round-trips through viper.
type fileConfig struct {
	Version       int          `yaml:"version"`
	Baud          int          `yaml:"baud"`
	ReadTimeout   string       `yaml:"read_timeout"`
	Interval      string       `yaml:"interval"`
	Warmup        string       `yaml:"warmup"`
	Backoff       string       `yaml:"backoff"`
	AnnounceEvery int          `yaml:"announce_every"`
	LockDir       string       `yaml:"lock_dir,omitempty"`
	Output        OutputConfig `yaml:"output"`
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(fileConfig{
		Version:       cfg.Version,
		Baud:          cfg.Baud,
		ReadTimeout:   cfg.ReadTimeout.String(),
		Interval:      cfg.Interval.String(),
		Warmup:        cfg.Warmup.String(),
		Backoff:       cfg.Backoff.String(),
		AnnounceEvery: cfg.AnnounceEvery,
		LockDir:       cfg.LockDir,
		Output:        cfg.Output,
	})
}

// Write saves cfg to path, creating parent directories. It refuses to
// replace an existing file unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config already exists at "+path,
				"Use --force to overwrite it.")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory "+filepath.Dir(path),
			"Check directory permissions")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write "+path,
			"Check file permissions")
	}
	return nil
}
