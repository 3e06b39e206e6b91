// Package config loads the edgemcu configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-edgemcu/led"
	"github.com/moffa90/go-edgemcu/mcu"
	"github.com/moffa90/go-edgemcu/protocol"
)

// Config is the file configuration. Zero fields take the defaults from
// Default.
type Config struct {
	Bus       int    `yaml:"bus"`
	Address   int    `yaml:"address"`
	MACPolicy string `yaml:"mac_policy"`
	Relock    *bool  `yaml:"relock,omitempty"`
	LogLevel  string `yaml:"log_level"`
	Simulate  bool   `yaml:"simulate"`
	WoL       WoL    `yaml:"wol"`
	LEDs      LEDs   `yaml:"leds"`
}

// WoL configures the ethtool hook. An empty Interface disables it.
type WoL struct {
	Interface string `yaml:"interface"`
}

// LEDs configures the LED class location.
type LEDs struct {
	Root string `yaml:"root"`
}

// LoadError reports a configuration file that could not be used.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns the built-in configuration.
func Default() *Config {
	relock := true
	return &Config{
		Bus:       0,
		Address:   protocol.DefaultAddress,
		MACPolicy: mcu.BestEffort.String(),
		Relock:    &relock,
		LogLevel:  "info",
		LEDs:      LEDs{Root: led.DefaultRoot},
	}
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if cfg.Relock == nil {
		relock := true
		cfg.Relock = &relock
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Bus < 0 {
		return &LoadError{Message: fmt.Sprintf("bus %d is negative", c.Bus)}
	}
	if c.Address < 0x03 || c.Address > 0x77 {
		return &LoadError{Message: fmt.Sprintf("address 0x%02x outside 0x03..0x77", c.Address)}
	}
	if _, err := mcu.ParseMACPolicy(c.MACPolicy); err != nil {
		return &LoadError{Message: "invalid mac_policy", Cause: err}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return &LoadError{Message: "invalid log_level", Cause: err}
	}
	return nil
}

// Policy returns the parsed MAC policy.
func (c *Config) Policy() mcu.MACPolicy {
	p, _ := mcu.ParseMACPolicy(c.MACPolicy)
	return p
}

// RelockEnabled reports the relock setting, true when unset.
func (c *Config) RelockEnabled() bool {
	return c.Relock == nil || *c.Relock
}

// Level returns the parsed log level.
func (c *Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel parses a slog level name such as "debug" or "warn+2". The
// empty string is info and "warning" is accepted for warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}
