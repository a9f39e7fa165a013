package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/etcd-cleaner/pkg/logging"
)

const (
	userConfigDir  = ".config/etcd-cleaner"
	configFileName = "config.yaml"

	// EnvConfigPath names an explicit configuration file.
	EnvConfigPath = "ETCD_CLEANER_CONFIG"
	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "ETCD_CLEANER_LOG_LEVEL"
)

// osUserHomeDir is swapped out in tests.
var osUserHomeDir = os.UserHomeDir

// Load resolves the configuration file location and loads it. An explicitly
// named file must exist; the per-user file is optional.
func Load() (Config, error) {
	var (
		cfg Config
		err error
	)
	if path := os.Getenv(EnvConfigPath); path != "" {
		cfg, err = LoadFile(path, false)
	} else {
		home, herr := osUserHomeDir()
		if herr != nil {
			logging.Debug("ConfigLoader", "No home directory (%v), using defaults", herr)
			cfg = DefaultConfig()
		} else {
			cfg, err = LoadFile(filepath.Join(home, userConfigDir, configFileName), true)
		}
	}
	if err != nil {
		return Config{}, err
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads path over DefaultConfig. When optional is true a missing
// file yields the defaults.
func LoadFile(path string, optional bool) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", path)
			return cfg, nil
		}
		return Config{}, &ConfigurationError{FilePath: path, ErrorType: "io", Message: err.Error()}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &ConfigurationError{
			FilePath:  path,
			ErrorType: "parse",
			Message:   fmt.Sprintf("error loading config: %v", err),
		}
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", path)
	return cfg, nil
}
