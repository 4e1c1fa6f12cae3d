// Package config loads application configuration from a YAML file with
// environment variable overrides for deployment-specific values and
// secrets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Directory DirectoryConfig `yaml:"directory"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Contacts  ContactsConfig  `yaml:"contacts"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// DirectoryConfig holds settings for the external user directory service.
type DirectoryConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Identity is a display name plus address pair for mail headers.
type Identity struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// SMTPConfig holds the mail relay settings for operator notifications.
type SMTPConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	StartTLS       bool     `yaml:"starttls"`
	From           Identity `yaml:"from"`
	To             Identity `yaml:"to"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// RateLimitConfig controls the per-address submission cooldown.
// Backend "history" gates on recent rows in the contacts table;
// "redis" uses an atomic per-address claim instead.
type RateLimitConfig struct {
	WindowSeconds int    `yaml:"window_seconds"`
	Backend       string `yaml:"backend"`
	RedisAddr     string `yaml:"redis_addr"`
}

// Window returns the cooldown window as a duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// ContactsConfig holds listing behavior for the contacts API.
type ContactsConfig struct {
	BizSuffix string `yaml:"biz_suffix"`
}

// LoggingConfig controls log verbosity and PII redaction.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"`
}

// Load reads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads the YAML file (if present), then a local .env file,
// then applies environment variable overrides. Environment always wins,
// which is how secrets reach production deployments.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DIRECTORY_BASE_URL"); v != "" {
		cfg.Directory.BaseURL = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = p
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); v != "" {
		if s, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.WindowSeconds = s
		}
	}
	if v := os.Getenv("RATE_LIMIT_BACKEND"); v != "" {
		cfg.RateLimit.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RateLimit.RedisAddr = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Directory.BaseURL == "" {
		c.Directory.BaseURL = "https://jsonplaceholder.typicode.com"
	}
	if c.Directory.TimeoutSeconds == 0 {
		c.Directory.TimeoutSeconds = 10
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.TimeoutSeconds == 0 {
		c.SMTP.TimeoutSeconds = 15
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.RateLimit.Backend == "" {
		c.RateLimit.Backend = "history"
	}
	if c.Contacts.BizSuffix == "" {
		c.Contacts.BizSuffix = ".biz"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks that the settings required at startup are present.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required (database.url or DATABASE_URL)")
	}
	if c.RateLimit.Backend != "history" && c.RateLimit.Backend != "redis" {
		return fmt.Errorf("unknown rate_limit backend %q", c.RateLimit.Backend)
	}
	if c.RateLimit.Backend == "redis" && c.RateLimit.RedisAddr == "" {
		return fmt.Errorf("rate_limit.redis_addr is required for the redis backend")
	}
	return nil
}
