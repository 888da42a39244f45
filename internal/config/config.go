package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Exchange struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"exchange"`
	Refresh struct {
		PriceSeconds   int `yaml:"price_seconds"`
		HistorySeconds int `yaml:"history_seconds"`
	} `yaml:"refresh"`
	Cache struct {
		PriceTTLSeconds   int `yaml:"price_ttl_seconds"`
		HistoryTTLSeconds int `yaml:"history_ttl_seconds"`
	} `yaml:"cache"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	var cfg Config
	cfg.Exchange.BaseURL = "https://api.binance.com"
	cfg.Exchange.TimeoutSeconds = 20
	cfg.Refresh.PriceSeconds = 60
	cfg.Refresh.HistorySeconds = 300
	cfg.Cache.PriceTTLSeconds = 60
	cfg.Cache.HistoryTTLSeconds = 300
	cfg.Server.Port = 8080
	cfg.Logging.Level = "info"
	return &cfg
}

// Load reads a YAML config file and fills unset values with defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Exchange.BaseURL == "" {
		cfg.Exchange.BaseURL = def.Exchange.BaseURL
	}
	if cfg.Exchange.TimeoutSeconds <= 0 {
		cfg.Exchange.TimeoutSeconds = def.Exchange.TimeoutSeconds
	}
	if cfg.Refresh.PriceSeconds <= 0 {
		cfg.Refresh.PriceSeconds = def.Refresh.PriceSeconds
	}
	if cfg.Refresh.HistorySeconds <= 0 {
		cfg.Refresh.HistorySeconds = def.Refresh.HistorySeconds
	}
	if cfg.Cache.PriceTTLSeconds <= 0 {
		cfg.Cache.PriceTTLSeconds = def.Cache.PriceTTLSeconds
	}
	if cfg.Cache.HistoryTTLSeconds <= 0 {
		cfg.Cache.HistoryTTLSeconds = def.Cache.HistoryTTLSeconds
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

func (c *Config) ExchangeTimeout() time.Duration {
	return time.Duration(c.Exchange.TimeoutSeconds) * time.Second
}

func (c *Config) PriceTTL() time.Duration {
	return time.Duration(c.Cache.PriceTTLSeconds) * time.Second
}

func (c *Config) HistoryTTL() time.Duration {
	return time.Duration(c.Cache.HistoryTTLSeconds) * time.Second
}
