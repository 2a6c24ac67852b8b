// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGifteeSearchPath = "/api/search/giftee/"
	DefaultFriendSearchPath = "/api/search/friend/"
	DefaultQueryParam       = "q"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Environment string          `yaml:"environment"`
	Search      SearchConfig    `yaml:"search"`
	Client      ClientConfig    `yaml:"client"`
	Logging     LoggingConfig   `yaml:"logging"`
	DevServer   DevServerConfig `yaml:"devserver"`
}

type SearchConfig struct {
	BaseURL          string `yaml:"base_url"`
	GifteeSearchPath string `yaml:"giftee_search_path"`
	FriendSearchPath string `yaml:"friend_search_path"`
	QueryParam       string `yaml:"query_param"`
	// DiscardStale drops responses superseded by a newer query.
	DiscardStale bool `yaml:"discard_stale"`
}

type ClientConfig struct {
	// Timeout of a single lookup, zero means none.
	Timeout time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DevServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	FixturesFile string `yaml:"fixtures_file"`
	MaxResults   int    `yaml:"max_results"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Environment: "default",
		Search: SearchConfig{
			BaseURL:          "http://localhost:8000",
			GifteeSearchPath: DefaultGifteeSearchPath,
			FriendSearchPath: DefaultFriendSearchPath,
			QueryParam:       DefaultQueryParam,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		DevServer: DevServerConfig{
			Host:         "localhost",
			Port:         8000,
			FixturesFile: "config/fixtures.yaml",
		},
	}
}

// Addr is the listen address of the development server.
func (c DevServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the search section.
func (c SearchConfig) Validate() error {
	if c.GifteeSearchPath == "" || c.FriendSearchPath == "" {
		return fmt.Errorf("%w: search paths must not be empty", ErrInvalidConfig)
	}
	if c.QueryParam == "" {
		return fmt.Errorf("%w: query_param must not be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base_url: %v", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an absolute http(s) URL", ErrInvalidConfig, c.BaseURL)
	}
	return nil
}

func findProjectRoot() (string, error) {
	// Start from the current working directory
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// Walk up the directory tree until we find the config directory
	for {
		if info, err := os.Stat(filepath.Join(dir, "config")); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (no config directory found)")
		}
		dir = parent
	}
}

// LoadConfig reads config/<env>.yaml (or .yml) from the project root on top
// of the defaults.
func LoadConfig(env string) (*Config, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("error finding project root: %w", err)
	}

	// Try loading with .yaml extension first
	configPath := filepath.Join(projectRoot, "config", fmt.Sprintf("%s.yaml", env))

	data, err := os.ReadFile(configPath)
	if err != nil {
		// If .yaml doesn't exist, try .yml
		configPath = filepath.Join(projectRoot, "config", fmt.Sprintf("%s.yml", env))
		data, err = os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}
	config.Environment = env

	// Relative fixture paths are resolved against the project root
	if f := config.DevServer.FixturesFile; f != "" && !filepath.IsAbs(f) {
		config.DevServer.FixturesFile = filepath.Join(projectRoot, f)
	}

	return config, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	config.Search.BaseURL = strings.TrimRight(config.Search.BaseURL, "/")
	if err := config.Search.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
