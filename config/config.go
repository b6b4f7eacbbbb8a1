package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/CIDgravity/snakelet"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// config structure
type Config struct {
	API    APIConfig    `mapstructure:"API"`
	Github GithubConfig `mapstructure:"GITHUB"`
	Feed   FeedConfig   `mapstructure:"FEED"`
	Logs   LogsConfig   `mapstructure:"LOGS"`
}

type APIConfig struct {
	ListenPort             string `mapstructure:"ListenPort"`
	ShutdownTimeoutSeconds int    `mapstructure:"ShutdownTimeoutSeconds"`
}

type GithubConfig struct {
	Account               string `mapstructure:"Account"`
	Token                 string `mapstructure:"Token"`   // optional, GITHUB_TOKEN env var takes precedence
	BaseURL               string `mapstructure:"BaseURL"` // empty means public api.github.com
	RequestTimeoutSeconds int    `mapstructure:"RequestTimeoutSeconds"`
	FallbackRateLimit     int    `mapstructure:"FallbackRateLimit"` // used when /rate_limit can't be reached at startup
}

type FeedConfig struct {
	MaxItems int `mapstructure:"MaxItems"`
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJSON"`
}

const defaultConfigFile = "config/config.toml"

// Load reads the TOML configuration on top of the defaults.
// When path is empty, config/config.toml is searched next to the binary then in the working directory,
// and the defaults are used if neither exists.
func Load(path string) (*Config, error) {
	// .env is optional, only used to provide secrets such as GITHUB_TOKEN
	_ = godotenv.Load()

	configFilePath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	cfg := GetDefault()

	if configFilePath != "" {
		if _, err := snakelet.InitAndLoad(cfg, configFilePath); err != nil {
			return nil, fmt.Errorf("loading %s: %w", configFilePath, err)
		}
	} else {
		log.Debug("no configuration file found, using defaults")
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.Github.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}

		return path, nil
	}

	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		return "", err
	}

	candidates := []string{filepath.Join(dir, defaultConfigFile), defaultConfigFile}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	return "", nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		API: APIConfig{
			ListenPort:             "5000",
			ShutdownTimeoutSeconds: 15,
		},
		Github: GithubConfig{
			Account:               "fabricio-odn",
			RequestTimeoutSeconds: 10,
			FallbackRateLimit:     60,
		},
		Feed: FeedConfig{
			MaxItems: 4,
		},
		Logs: LogsConfig{
			Level:            "debug",
			OutputLogsAsJSON: false,
		},
	}
}

// Validate checks the values the feed can't work without
func (c Config) Validate() error {
	if c.Github.Account == "" {
		return errors.New("GITHUB.Account must not be empty")
	}

	if c.Feed.MaxItems <= 0 {
		return fmt.Errorf("FEED.MaxItems must be positive, got %d", c.Feed.MaxItems)
	}

	if c.Github.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("GITHUB.RequestTimeoutSeconds must be positive, got %d", c.Github.RequestTimeoutSeconds)
	}

	if c.Github.FallbackRateLimit <= 0 {
		return fmt.Errorf("GITHUB.FallbackRateLimit must be positive, got %d", c.Github.FallbackRateLimit)
	}

	return nil
}

func (c GithubConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c APIConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
