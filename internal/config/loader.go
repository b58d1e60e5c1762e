package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory for the user config, relative to home.
	GlobalConfigDir = ".config/cpuglow"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. CPUGLOW_INTERVAL=500ms.
	EnvPrefix = "CPUGLOW"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"interval": "interval",
	"verbose":  "output.verbose",
	"color":    "output.color",
}

// DefaultPath returns ~/.config/cpuglow/config.yaml, or "" if home is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// Load resolves configuration from, highest precedence first: flags that were
// set, CPUGLOW_* environment variables, the config file, and defaults.
//
// An explicit path must exist. With an empty path the default location is
// used if a file is there; otherwise only defaults and overrides apply.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	file, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file "+file,
				"Check the file is valid YAML")
		}
	}

	return parseConfig(v, file)
}

// newViper creates a viper instance with defaults and env binding.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults mirrors DefaultConfig so env overrides work for every key.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("baud", d.Baud)
	v.SetDefault("read_timeout", d.ReadTimeout)
	v.SetDefault("interval", d.Interval)
	v.SetDefault("warmup", d.Warmup)
	v.SetDefault("backoff", d.Backoff)
	v.SetDefault("announce_every", d.AnnounceEvery)
	v.SetDefault("lock_dir", d.LockDir)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("output.verbose", d.Output.Verbose)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to bind --"+name,
				"")
		}
	}
	return nil
}

// resolvePath returns the config file to read, or "" for none.
func resolvePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found: "+explicit,
					"Check the path, or run 'cpuglow init' to create one")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	global := DefaultPath()
	if global == "" {
		return "", nil
	}
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// parseConfig converts viper config to our Config struct and validates it.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your environment"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
