package uploader

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the uploader settings. It is passed explicitly to New; the
// package keeps no global configuration.
type Config struct {
	// Port is the serial port name, e.g. /dev/ttyUSB0 or COM3.
	Port string `yaml:"port"`
	// Baud is the serial baud rate.
	Baud int `yaml:"baud"`
	// TimeoutMs is the acknowledgement wait in milliseconds.
	TimeoutMs int `yaml:"timeout_ms"`
	// MaxPatternBytes caps the accepted pattern size.
	MaxPatternBytes int `yaml:"max_pattern_bytes"`
	// ResetAfterUpload reboots the device into run mode after a
	// successful pattern push.
	ResetAfterUpload bool `yaml:"reset_after_upload"`
}

// Timeout returns the acknowledgement wait as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Baud:             115200,
		TimeoutMs:        int(DefaultTimeout / time.Millisecond),
		MaxPatternBytes:  DefaultMaxPatternBytes,
		ResetAfterUpload: true,
	}
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate user config dir")
	}
	return filepath.Join(dir, "pixeluploader", "config.yaml"), nil
}

// LoadConfig reads a YAML config file. A missing file is not an error; the
// defaults are returned instead.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse config file")
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the parent directory if needed.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config dir")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "failed to write config file")
}
