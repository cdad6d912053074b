// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

// Package settings loads and persists statdeck's configuration: the serial
// link, the export listen address, the weather account, and display tuning.
// Values come from defaults, then the TOML config file, then STATDECK_*
// environment variables; command flags override on top of the result.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// File naming
const (
	fileName = "statdeck"
	fileType = "toml"
	dirName  = "statdeck"
)

// Units accepted for the weather account.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// Settings is the persisted configuration.
type Settings struct {
	Port   string `mapstructure:"port"`   // serial device, e.g. /dev/ttyACM0
	Baud   int    `mapstructure:"baud"`   // serial baud rate
	Listen string `mapstructure:"listen"` // export server address

	MountPrimary   string `mapstructure:"mount_primary"`   // feeder free-space mounts
	MountSecondary string `mapstructure:"mount_secondary"` //

	OWMAPIKey string `mapstructure:"owm_api_key"` // OpenWeatherMap API key
	City      string `mapstructure:"city"`        // e.g. "Portland,US"
	Units     string `mapstructure:"units"`       // metric or imperial

	EaseRate float64 `mapstructure:"ease_rate"` // bar animation rate constant
}

// Defaults returns the stock configuration.
func Defaults() *Settings {
	return &Settings{
		Baud:           115200,
		Listen:         ":8080",
		MountPrimary:   "/",
		MountSecondary: "/home",
		Units:          UnitsImperial,
		EaseRate:       7.0,
	}
}

// Dir returns the configuration directory, creating nothing.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(base, dirName), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName+"."+fileType), nil
}

// Load reads settings from the given file path, or from the default
// location when path is empty. A missing file is not an error: defaults and
// environment variables still apply.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType(fileType)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(fileName)
		v.AddConfigPath(dir)
	}

	applyDefaults(v)

	v.SetEnvPrefix("STATDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Absent files are fine either way viper reports them: as its own
		// not-found type in search mode, or as the raw open error when the
		// path was given explicitly.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes settings to the given file path, or to the default location
// when path is empty, creating the directory as needed. The file is
// tightened to 0600 because it can carry the weather API key.
func Save(s *Settings, path string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.Set("port", s.Port)
	v.Set("baud", s.Baud)
	v.Set("listen", s.Listen)
	v.Set("mount_primary", s.MountPrimary)
	v.Set("mount_secondary", s.MountSecondary)
	v.Set("owm_api_key", s.OWMAPIKey)
	v.Set("city", s.City)
	v.Set("units", s.Units)
	v.Set("ease_rate", s.EaseRate)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict config perms: %w", err)
	}
	return nil
}

// Validate checks settings for values the rest of the program cannot work
// with.
func (s *Settings) Validate() error {
	if s.Baud <= 0 {
		return fmt.Errorf("invalid baud rate: %d", s.Baud)
	}
	if s.Units != UnitsMetric && s.Units != UnitsImperial {
		return fmt.Errorf("invalid units %q: want %q or %q", s.Units, UnitsMetric, UnitsImperial)
	}
	if s.EaseRate <= 0 {
		return fmt.Errorf("invalid ease rate: %g", s.EaseRate)
	}
	return nil
}

// WeatherConfigured reports whether the weather page has what it needs.
func (s *Settings) WeatherConfigured() bool {
	return s.OWMAPIKey != "" && s.City != ""
}

func applyDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("port", d.Port)
	v.SetDefault("baud", d.Baud)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("mount_primary", d.MountPrimary)
	v.SetDefault("mount_secondary", d.MountSecondary)
	v.SetDefault("owm_api_key", d.OWMAPIKey)
	v.SetDefault("city", d.City)
	v.SetDefault("units", d.Units)
	v.SetDefault("ease_rate", d.EaseRate)
}
