package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "https://api.gateway.attomdata.com"
	DefaultEndpoint    = "/propertyapi/v1.0.0/property/detail"
	DefaultTimeout     = 30 * time.Second
	DefaultServerPort  = 8080
	DefaultLogLevel    = "INFO"
	DefaultConfigPath  = "configs/config.yaml"
	apiKeyEnv          = "ATTOM_API_KEY"
	baseURLEnv         = "ATTOM_BASE_URL"
	defaultEndpointEnv = "ATTOM_DEFAULT_ENDPOINT"
	timeoutEnv         = "ATTOM_TIMEOUT"
	serverPortEnv      = "SERVER_PORT"
	logLevelEnv        = "LOG_LEVEL"
)

// ErrMissingAPIKey is returned when no ATTOM API key is configured.
var ErrMissingAPIKey = errors.New("ATTOM_API_KEY is required")

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Attom struct {
		BaseURL         string        `yaml:"base_url"`
		APIKey          string        `yaml:"api_key"`
		DefaultEndpoint string        `yaml:"default_endpoint"`
		Timeout         time.Duration `yaml:"timeout"`
	} `yaml:"attom"`
}

// Load starts from the defaults, layers the YAML file at path (skipped when
// path is empty) and environment overrides on top, then validates the result.
// A value set explicitly, such as a zero ATTOM_TIMEOUT, is kept.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptional behaves like Load but treats a missing file as empty.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	return Load(path)
}

func (c *Config) applyEnv() error {
	if key := os.Getenv(apiKeyEnv); key != "" {
		c.Attom.APIKey = key
	}
	if baseURL := os.Getenv(baseURLEnv); baseURL != "" {
		c.Attom.BaseURL = baseURL
	}
	if endpoint := os.Getenv(defaultEndpointEnv); endpoint != "" {
		c.Attom.DefaultEndpoint = endpoint
	}
	if timeout := os.Getenv(timeoutEnv); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", timeoutEnv, err)
		}
		c.Attom.Timeout = d
	}
	if port := os.Getenv(serverPortEnv); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", serverPortEnv, err)
		}
		c.Server.Port = portNum
	}
	if level := os.Getenv(logLevelEnv); level != "" {
		c.Log.Level = level
	}
	return nil
}

func defaultConfig() Config {
	var cfg Config
	cfg.Server.Port = DefaultServerPort
	cfg.Log.Level = DefaultLogLevel
	cfg.Attom.BaseURL = DefaultBaseURL
	cfg.Attom.DefaultEndpoint = DefaultEndpoint
	cfg.Attom.Timeout = DefaultTimeout
	return cfg
}

// Validate checks the settings the handler cannot run without.
func (c *Config) Validate() error {
	if c.Attom.APIKey == "" {
		return ErrMissingAPIKey
	}
	u, err := url.Parse(c.Attom.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid ATTOM base URL: %q", c.Attom.BaseURL)
	}
	if c.Attom.Timeout < 0 {
		return fmt.Errorf("ATTOM timeout must be non-negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	return nil
}
