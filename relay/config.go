package relay

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config holds configuration for the gateway relay.
type Config struct {
	// MountPath is the local path prefix stripped before forwarding.
	// Example: "/seeks"
	MountPath string

	// BackendURL is the origin requests are forwarded to.
	// Example: "http://s.s"
	BackendURL string

	// ProxyURL is the relay hop every backend call goes through. Empty
	// disables the hop.
	// Example: "http://localhost:8250"
	ProxyURL string

	// LandingPath is where the bare mount point redirects to, relative to the
	// mount point.
	LandingPath string

	// Timeout bounds one backend call. Zero means no timeout.
	Timeout time.Duration

	// MaxBodySize caps the backend response read into memory.
	MaxBodySize int64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithMountPath sets the local path prefix.
func WithMountPath(path string) ConfigOption {
	return func(c *Config) {
		c.MountPath = path
	}
}

// WithBackendURL sets the backend origin.
func WithBackendURL(backend string) ConfigOption {
	return func(c *Config) {
		c.BackendURL = backend
	}
}

// WithProxyURL sets the relay hop.
func WithProxyURL(proxy string) ConfigOption {
	return func(c *Config) {
		c.ProxyURL = proxy
	}
}

// WithLandingPath sets the landing page path.
func WithLandingPath(path string) ConfigOption {
	return func(c *Config) {
		c.LandingPath = path
	}
}

// WithTimeout sets the backend call timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxBodySize caps the backend response size.
func WithMaxBodySize(size int64) ConfigOption {
	return func(c *Config) {
		c.MaxBodySize = size
	}
}

// DefaultConfig returns a Config with the stock deployment values.
func DefaultConfig() *Config {
	return &Config{
		MountPath:   "/seeks",
		BackendURL:  "http://s.s",
		ProxyURL:    "http://localhost:8250",
		LandingPath: "/websearch-hp",
		Timeout:     60 * time.Second,
		MaxBodySize: 32 << 20,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
func (c *Config) Normalize() {
	c.MountPath = "/" + strings.Trim(strings.TrimSpace(c.MountPath), "/")
	c.BackendURL = strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
	c.ProxyURL = strings.TrimSpace(c.ProxyURL)
	c.LandingPath = strings.TrimSpace(c.LandingPath)
	if c.LandingPath != "" && !strings.HasPrefix(c.LandingPath, "/") {
		c.LandingPath = "/" + c.LandingPath
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.MountPath == "/" {
		return errors.New("relay config: MountPath is required")
	}
	if c.BackendURL == "" {
		return errors.New("relay config: BackendURL is required")
	}
	if u, err := url.Parse(c.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("relay config: BackendURL must be an absolute URL")
	}
	if c.ProxyURL != "" {
		if u, err := url.Parse(c.ProxyURL); err != nil || u.Host == "" {
			return errors.New("relay config: ProxyURL must be an absolute URL")
		}
	}
	if c.LandingPath == "" {
		return errors.New("relay config: LandingPath is required")
	}
	if c.Timeout < 0 {
		return errors.New("relay config: Timeout must not be negative")
	}
	if c.MaxBodySize <= 0 {
		return errors.New("relay config: MaxBodySize must be positive")
	}
	return nil
}
