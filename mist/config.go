package mist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the file/environment representation of client settings. It
// maps onto ClientConfig; durations are plain seconds so the same file
// works for the Python tooling this replaced.
type Config struct {
	Token              string `json:"token" yaml:"token"`
	OrgID              string `json:"org_id" yaml:"org_id"`
	Host               string `json:"host,omitempty" yaml:"host,omitempty"`
	Timeout            int    `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxRetries         int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	RateLimitPerMinute int    `json:"rate_limit_per_minute,omitempty" yaml:"rate_limit_per_minute,omitempty"`
}

// Validate checks that the required credentials are present.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("API token is required (API_TOKEN or MIST_API_TOKEN)")
	}
	if c.OrgID == "" {
		return errors.New("organization id is required (ORG_ID or MIST_ORG_ID)")
	}
	return nil
}

// LoadConfigFromEnv reads configuration from environment variables,
// optionally loading a .env file first. Both plain and MIST_-prefixed
// variable names are accepted.
func LoadConfigFromEnv(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, errors.Wrapf(err, "failed to load env file %s", envFile)
			}
		}
	}

	host := firstEnv("HOST", "MIST_API_HOST")
	if host == "" {
		host = stripScheme(os.Getenv("BASE_URL"))
	}

	cfg := &Config{
		Token: firstEnv("API_TOKEN", "MIST_API_TOKEN"),
		OrgID: firstEnv("ORG_ID", "MIST_ORG_ID"),
		Host:  host,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFromFile reads configuration from a JSON or YAML file,
// selected by extension.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "invalid YAML in config file %s", path)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "invalid JSON in config file %s", path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
