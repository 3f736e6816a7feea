// Package config loads seekr settings from a YAML file, .env files and
// SEEKR_* environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/seekr/relay"
	"github.com/poiesic/seekr/session"
)

// Config is the complete seekr configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Relay    Relay  `yaml:"relay"`
	Client   Client `yaml:"client"`
}

// Relay configures the gateway relay server.
type Relay struct {
	Listen  string        `yaml:"listen"`
	Mount   string        `yaml:"mount"`
	Backend string        `yaml:"backend"`
	Proxy   string        `yaml:"proxy"`
	Landing string        `yaml:"landing"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client configures the search client.
type Client struct {
	BaseURL  string        `yaml:"base_url"`
	Lang     string        `yaml:"lang"`
	Theme    string        `yaml:"theme"`
	Clusters int           `yaml:"clusters"`
	DB       string        `yaml:"db"`
	Timeout  time.Duration `yaml:"timeout"`
	PoolSize int           `yaml:"pool_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	rc := relay.DefaultConfig()
	sc := session.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Relay: Relay{
			Listen:  ":8080",
			Mount:   rc.MountPath,
			Backend: rc.BackendURL,
			Proxy:   rc.ProxyURL,
			Landing: rc.LandingPath,
			Timeout: rc.Timeout,
		},
		Client: Client{
			BaseURL:  sc.BaseURL,
			Lang:     sc.DefaultLang,
			Theme:    "original",
			Clusters: sc.Clusters,
			Timeout:  30 * time.Second,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path, when path
// is not empty, and then with the SEEKR_* environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overlays the SEEKR_* environment variables that are set.
func (c *Config) ApplyEnv() {
	c.LogLevel = GetEnv("SEEKR_LOG_LEVEL", c.LogLevel)

	c.Relay.Listen = GetEnv("SEEKR_RELAY_LISTEN", c.Relay.Listen)
	c.Relay.Mount = GetEnv("SEEKR_RELAY_MOUNT", c.Relay.Mount)
	c.Relay.Backend = GetEnv("SEEKR_RELAY_BACKEND", c.Relay.Backend)
	c.Relay.Proxy = GetEnv("SEEKR_RELAY_PROXY", c.Relay.Proxy)
	c.Relay.Landing = GetEnv("SEEKR_RELAY_LANDING", c.Relay.Landing)
	c.Relay.Timeout = GetEnvDuration("SEEKR_RELAY_TIMEOUT", c.Relay.Timeout)

	c.Client.BaseURL = GetEnv("SEEKR_BASE_URL", c.Client.BaseURL)
	c.Client.Lang = GetEnv("SEEKR_LANG", c.Client.Lang)
	c.Client.Theme = GetEnv("SEEKR_THEME", c.Client.Theme)
	c.Client.Clusters = GetEnvInt("SEEKR_CLUSTERS", c.Client.Clusters)
	c.Client.DB = GetEnv("SEEKR_DB", c.Client.DB)
	c.Client.Timeout = GetEnvDuration("SEEKR_FETCH_TIMEOUT", c.Client.Timeout)
	c.Client.PoolSize = GetEnvInt("SEEKR_POOL_SIZE", c.Client.PoolSize)
}

// RelayConfig converts the relay section into a validated relay.Config.
func (c *Config) RelayConfig() (*relay.Config, error) {
	rc := relay.NewConfig(
		relay.WithMountPath(c.Relay.Mount),
		relay.WithBackendURL(c.Relay.Backend),
		relay.WithProxyURL(c.Relay.Proxy),
		relay.WithLandingPath(c.Relay.Landing),
		relay.WithTimeout(c.Relay.Timeout),
	)
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return rc, nil
}

// SessionConfig converts the client section into a validated session.Config.
func (c *Config) SessionConfig() (*session.Config, error) {
	sc := session.NewConfig(
		session.WithBaseURL(c.Client.BaseURL),
		session.WithDefaultLang(c.Client.Lang),
		session.WithClusters(c.Client.Clusters),
	)
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks both sections.
func (c *Config) Validate() error {
	if c.Relay.Listen == "" {
		return errors.New("config: relay listen address is required")
	}
	if _, err := c.RelayConfig(); err != nil {
		return err
	}
	if _, err := c.SessionConfig(); err != nil {
		return err
	}
	if c.Client.PoolSize < 0 {
		return errors.New("config: client pool_size must not be negative")
	}
	return nil
}
