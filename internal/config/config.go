// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists IR Cloner configuration. Values are
// layered with Viper: defaults, then the config file, then IRCLONER_*
// environment variables, then command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName = "ircloner"
	// DefaultBaudrate matches the receiver firmware's default.
	DefaultBaudrate = 9600
	// DefaultDSN is the SQLite file created in the working directory.
	DefaultDSN = "./ir_remotes.db"
)

// Config is the resolved application configuration. Flag names match the
// mapstructure keys so cobra flags bind directly.
type Config struct {
	Port     string         `mapstructure:"port" yaml:"port"`
	Baudrate int            `mapstructure:"baudrate" yaml:"baudrate"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Language string         `mapstructure:"language" yaml:"language"`
	Debug    bool           `mapstructure:"debug" yaml:"debug"`
}

// DatabaseConfig selects the store backend.
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// DefaultPort returns a platform-typical serial device path.
func DefaultPort() string {
	switch runtime.GOOS {
	case "windows":
		return "COM3"
	case "darwin":
		return "/dev/tty.usbserial"
	default:
		return "/dev/ttyUSB0"
	}
}

// DefaultConfig returns the configuration used when nothing is set. It is
// also what a first run writes to disk.
func DefaultConfig() Config {
	return Config{
		Port:     DefaultPort(),
		Baudrate: DefaultBaudrate,
		Database: DatabaseConfig{Type: "sqlite", Dsn: DefaultDSN},
		Language: "en",
	}
}

// Defaults returns DefaultConfig keyed the way Viper expects it.
func Defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"port":          d.Port,
		"baudrate":      d.Baudrate,
		"database.type": d.Database.Type,
		"database.dsn":  d.Database.Dsn,
		"language":      d.Language,
		"debug":         d.Debug,
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "IRCloner")
		default: // Linux, macOS, etc.
			configDir = "/etc/" + appName
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, appName)
	}

	return filepath.Join(configDir, appName+".yaml"), nil
}

// LoadConfig resolves configuration into T. explicitPath, when non-nil, is
// read instead of searching the standard locations. The returned string is
// the config file that was used, or "" when none was found; a missing file
// is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, string, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(appName)
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, "", err
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, "", err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, "", err
	}
	return c, v.ConfigFileUsed(), nil
}

// WriteConfigFile writes c as YAML to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}
