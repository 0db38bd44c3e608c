package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/martinnjensen/MetalWatch/internal/event"
)

// Config is the root application configuration.
type Config struct {
	DataDir    string         `yaml:"data_dir"`
	Passphrase string         `yaml:"passphrase"`
	Notify     NotifyConfig   `yaml:"notify"`
	Serve      ServeConfig    `yaml:"serve"`
	Sources    []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one origin to scrape. Interval accepts Go duration
// strings ("24h", "90m"); empty means the default of 24 hours. Enabled
// defaults to true.
type SourceConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Scraper  string `yaml:"scraper"`
	URL      string `yaml:"url"`
	Interval string `yaml:"interval"`
	Enabled  *bool  `yaml:"enabled"`
}

// NotifyConfig selects and configures the notification channel.
type NotifyConfig struct {
	Channel string      `yaml:"channel"` // "console" or "email"
	Email   EmailConfig `yaml:"email"`
}

// EmailConfig holds SMTP settings for the email channel. The recipient
// normally comes from the stored preference profile; To is a fallback.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// ServeConfig configures daemon mode.
type ServeConfig struct {
	CheckInterval string `yaml:"check_interval"`
	MetricsAddr   string `yaml:"metrics_addr"`
}

// Load reads and validates a config file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "~/.local/share/metalwatch"
	}
	if cfg.Notify.Channel == "" {
		cfg.Notify.Channel = "console"
	}
	if cfg.Serve.CheckInterval == "" {
		cfg.Serve.CheckInterval = "1h"
	}
	if cfg.Serve.MetricsAddr == "" {
		cfg.Serve.MetricsAddr = ":9464"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Notify.Channel != "console" && c.Notify.Channel != "email" {
		return fmt.Errorf("unknown notify channel: %s", c.Notify.Channel)
	}
	if _, err := time.ParseDuration(c.Serve.CheckInterval); err != nil {
		return fmt.Errorf("invalid check_interval: %w", err)
	}
	seen := make(map[string]bool)
	for i, src := range c.Sources {
		if src.ID == "" {
			return fmt.Errorf("source %d: missing id", i)
		}
		if seen[src.ID] {
			return fmt.Errorf("duplicate source id: %s", src.ID)
		}
		seen[src.ID] = true
		if src.URL == "" {
			return fmt.Errorf("source %s: missing url", src.ID)
		}
		if src.Scraper == "" {
			return fmt.Errorf("source %s: missing scraper", src.ID)
		}
		if src.Interval != "" {
			if _, err := time.ParseDuration(src.Interval); err != nil {
				return fmt.Errorf("source %s: invalid interval: %w", src.ID, err)
			}
		}
	}
	return nil
}

// CheckInterval returns the parsed daemon check interval.
func (c *Config) CheckInterval() time.Duration {
	d, _ := time.ParseDuration(c.Serve.CheckInterval)
	return d
}

// SourceList converts the configured sources into domain sources.
func (c *Config) SourceList() []*event.Source {
	sources := make([]*event.Source, 0, len(c.Sources))
	for _, sc := range c.Sources {
		interval := event.DefaultScrapeInterval
		if sc.Interval != "" {
			if d, err := time.ParseDuration(sc.Interval); err == nil {
				interval = d
			}
		}
		enabled := true
		if sc.Enabled != nil {
			enabled = *sc.Enabled
		}
		name := sc.Name
		if name == "" {
			name = sc.ID
		}
		sources = append(sources, &event.Source{
			ID:         sc.ID,
			Name:       name,
			ScraperKey: sc.Scraper,
			URL:        sc.URL,
			Interval:   interval,
			Enabled:    enabled,
		})
	}
	return sources
}
