// Package config resolves weiwei settings from .weiwei.yaml, .env and the
// WEIWEI_* environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/weiwei/pkg/store"
)

const (
	DefaultPath     = "~/.weiwei.db"
	DefaultModel    = "gemini-2.5-flash"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTimeout  = 30 * time.Second
)

// Config is the resolved runtime configuration.
type Config struct {
	Path     string
	Driver   store.Driver
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// BasePath is where the selected store driver keeps its data.
func (c *Config) BasePath() string {
	return c.Path
}

// HasCredential reports whether the live intelligence provider can be used.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Load reads configuration relative to the working directory.
func Load() (*Config, error) {
	return LoadDir(".")
}

// LoadDir reads dir/.env and dir/.weiwei.yaml (or $WEIWEI_CONFIG_PATH) and
// overlays the environment.
func LoadDir(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("driver", string(store.DriverDiskv))
	v.SetDefault("model", DefaultModel)
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("timeout", DefaultTimeout.String())
	v.SetConfigName(".weiwei") // .yaml is implicit
	v.SetEnvPrefix("WEIWEI")
	v.AutomaticEnv()

	if override := os.Getenv("WEIWEI_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	driver, err := store.ParseDriver(v.GetString("driver"))
	if err != nil {
		return nil, err
	}
	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Config{
		Path:     path,
		Driver:   driver,
		APIKey:   firstNonEmpty(v.GetString("api_key"), os.Getenv("API_KEY"), os.Getenv("GEMINI_API_KEY")),
		Model:    v.GetString("model"),
		Endpoint: strings.TrimRight(v.GetString("endpoint"), "/"),
		Timeout:  timeout,
	}, nil
}

// OpenStore opens the configured store driver.
func (c *Config) OpenStore() (store.KV, error) {
	return store.Open(c.Driver, c.BasePath())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
