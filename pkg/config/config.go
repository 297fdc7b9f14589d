package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Shop struct {
		MinPercent         int     `yaml:"min_percent"`
		MaxPercent         int     `yaml:"max_percent"`
		ReferenceBasePrice int     `yaml:"reference_base_price"`
		EventEnd           string  `yaml:"event_end"` // RFC3339; shop stops fluctuating here
		AlertThreshold     float64 `yaml:"alert_threshold"`
	} `yaml:"shop"`
	Cache struct {
		Backend string `yaml:"backend"` // memory or redis
		Memory  struct {
			MaxSize int `yaml:"max_size"`
		} `yaml:"memory"`
		Redis struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	History struct {
		Enabled bool `yaml:"enabled"`
		Table   string `yaml:"table"`
		ClickHouse struct {
			Host         string        `yaml:"host"`
			Port         int           `yaml:"port"`
			Database     string        `yaml:"database"`
			User         string        `yaml:"user"`
			Password     string        `yaml:"password"`
			DialTimeout  time.Duration `yaml:"dial_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"clickhouse"`
	} `yaml:"history"`
	Alerts struct {
		Enabled bool   `yaml:"enabled"`
		Topic   string `yaml:"topic"`
		Kafka   struct {
			Brokers      []string      `yaml:"brokers"`
			RequiredAcks int           `yaml:"required_acks"`
			Compression  string        `yaml:"compression"`
			MaxAttempts  int           `yaml:"max_attempts"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"kafka"`
	} `yaml:"alerts"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SHOP_EVENT_END"); v != "" {
		c.Shop.EventEnd = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Alerts.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.History.ClickHouse.Host = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Shop.MinPercent == 0 {
		c.Shop.MinPercent = 90
	}
	if c.Shop.MaxPercent == 0 {
		c.Shop.MaxPercent = 110
	}
	if c.Shop.ReferenceBasePrice == 0 {
		c.Shop.ReferenceBasePrice = 250
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.History.Table == "" {
		c.History.Table = "shellwatch.price_observations"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Shop.ReferenceBasePrice < 1 {
		return fmt.Errorf("shop.reference_base_price must be >= 1")
	}
	if c.Shop.EventEnd == "" {
		return fmt.Errorf("shop.event_end is required")
	}
	if _, err := time.Parse(time.RFC3339, c.Shop.EventEnd); err != nil {
		return fmt.Errorf("shop.event_end must be RFC3339: %w", err)
	}
	if c.Alerts.Enabled {
		if len(c.Alerts.Kafka.Brokers) == 0 {
			return fmt.Errorf("alerts.kafka.brokers cannot be empty when alerts are enabled")
		}
		if c.Alerts.Topic == "" {
			return fmt.Errorf("alerts.topic is required when alerts are enabled")
		}
	}
	if c.History.Enabled && c.History.ClickHouse.Host == "" {
		return fmt.Errorf("history.clickhouse.host is required when history is enabled")
	}
	return nil
}

// EventEndHour returns the configured shop end as a unix hour.
func (c *Config) EventEndHour() int64 {
	t, err := time.Parse(time.RFC3339, c.Shop.EventEnd)
	if err != nil {
		return 0 // Validate rejects this earlier
	}
	return t.UTC().Unix() / 3600
}
