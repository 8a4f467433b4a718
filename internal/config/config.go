// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the console configuration from defaults, the
// panaderia.yaml file, PANADERIA_* environment variables and command flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName    = "panaderia"
	envPrefix  = "panaderia"
	configName = "panaderia"
)

// Endpoints are the resource paths below the API base URL.
type Endpoints struct {
	Customer string `mapstructure:"customer" yaml:"customer"`
	Employee string `mapstructure:"employee" yaml:"employee"`
	Product  string `mapstructure:"product" yaml:"product"`
	Order    string `mapstructure:"order" yaml:"order"`
	Address  string `mapstructure:"address" yaml:"address"`
	Roles    string `mapstructure:"roles" yaml:"roles"`
}

// API describes how to reach the bakery backend.
type API struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	AuthURL   string        `mapstructure:"auth_url" yaml:"auth_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Retries   int           `mapstructure:"retries" yaml:"retries"`
	Endpoints Endpoints     `mapstructure:"endpoints" yaml:"endpoints"`
}

// Database is the local store holding the session and UI preferences.
type Database struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// Log controls the logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Config is the full console configuration.
type Config struct {
	API      API      `mapstructure:"api" yaml:"api"`
	Database Database `mapstructure:"database" yaml:"database"`
	Language string   `mapstructure:"language" yaml:"language"`
	Log      Log      `mapstructure:"log" yaml:"log"`
}

// Defaults returns the built-in configuration values keyed the way viper
// expects them.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url":           "http://localhost:8085",
		"api.auth_url":           "http://localhost:8085/auth",
		"api.timeout":            "15s",
		"api.retries":            2,
		"api.endpoints.customer": "/v1/api/customer",
		"api.endpoints.employee": "/v1/api/employee",
		"api.endpoints.product":  "/v1/api/product",
		"api.endpoints.order":    "/v1/api/order",
		"api.endpoints.address":  "/v1/api/address",
		"api.endpoints.roles":    "/v1/api/roles",
		"database.type":          "sqlite",
		"database.dsn":           defaultDSN(),
		"language":               "es",
		"log.level":              "info",
		"log.file":               "",
	}
}

func defaultDSN() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "./panaderia.db"
	}
	return filepath.Join(dir, appName, "panaderia.db")
}

// GetConfigPath returns the full path of the user or system config file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Panaderia")
		default:
			configDir = "/etc/panaderia"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, appName)
	}

	return filepath.Join(configDir, configName+".yaml"), nil
}

// LoadConfig builds a T from defaults, the config file, the environment and
// the flags of cmd. A missing config file is reported as
// viper.ConfigFileNotFoundError together with the values loaded so far, so
// callers can write a default file on first run.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(configName)
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

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return c, err
		}
		notFound = nf
	} else if used := v.ConfigFileUsed(); used != "" {
		// An empty file is treated like a missing one.
		if st, statErr := os.Stat(used); statErr == nil && st.Size() == 0 {
			notFound = viper.ConfigFileNotFoundError{}
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFound
}

// WriteConfigFile stores c as YAML at the user or system config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigFileTo(c, path)
}

// WriteConfigFileTo stores c as YAML at path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0o600)
}
