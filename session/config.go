package session

import (
	"errors"
	"strings"

	"github.com/poiesic/seekr/core"
)

// Config holds configuration for a search session.
type Config struct {
	// BaseURL is the search endpoint prefix fetches are sent to, without the
	// trailing /search path.
	// Example: "http://localhost:8080/seeks"
	BaseURL string

	// DefaultLang is the language used until a response or a query directive
	// sets one.
	DefaultLang string

	// TextPerPage, ImagePerPage, VideoPerPage and SocialPerPage are the fixed
	// results-per-page of each vertical.
	TextPerPage   int
	ImagePerPage  int
	VideoPerPage  int
	SocialPerPage int

	// Clusters is the number of clusters requested in clusterize mode.
	// Default: 10
	Clusters int

	// ContentAnalysis is sent as the content_analysis flag.
	ContentAnalysis string

	// Personalization is the initial personalization state of every vertical.
	Personalization core.Personalization

	// VideoEngines and SocialEngines are the fixed engine sets requested for
	// the video and social verticals.
	VideoEngines  core.Engines
	SocialEngines core.Engines
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBaseURL sets the search endpoint prefix.
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithDefaultLang sets the initial session language.
func WithDefaultLang(lang string) ConfigOption {
	return func(c *Config) {
		c.DefaultLang = lang
	}
}

// WithClusters sets the number of clusters requested in clusterize mode.
func WithClusters(n int) ConfigOption {
	return func(c *Config) {
		c.Clusters = n
	}
}

// WithPersonalization sets the initial personalization state.
func WithPersonalization(p core.Personalization) ConfigOption {
	return func(c *Config) {
		c.Personalization = p
	}
}

// WithContentAnalysis sets the content_analysis flag.
func WithContentAnalysis(flag string) ConfigOption {
	return func(c *Config) {
		c.ContentAnalysis = flag
	}
}

// WithPerPage sets the results-per-page of one vertical.
func WithPerPage(v core.Vertical, n int) ConfigOption {
	return func(c *Config) {
		switch v {
		case core.VerticalImage:
			c.ImagePerPage = n
		case core.VerticalVideo:
			c.VideoPerPage = n
		case core.VerticalSocial:
			c.SocialPerPage = n
		default:
			c.TextPerPage = n
		}
	}
}

// DefaultConfig returns a Config matching the stock search front end.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "http://localhost:8080/seeks",
		DefaultLang:     "en",
		TextPerPage:     10,
		ImagePerPage:    60,
		VideoPerPage:    40,
		SocialPerPage:   40,
		Clusters:        10,
		ContentAnalysis: "off",
		Personalization: core.PersonalizationOn,
		VideoEngines:    core.Engines{"youtube", "dailymotion"},
		SocialEngines:   core.Engines{"twitter", "identica"},
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

// PerPage returns the results-per-page of v.
func (c *Config) PerPage(v core.Vertical) int {
	switch v {
	case core.VerticalImage:
		return c.ImagePerPage
	case core.VerticalVideo:
		return c.VideoPerPage
	case core.VerticalSocial:
		return c.SocialPerPage
	default:
		return c.TextPerPage
	}
}

// FixedEngines returns the engine set always requested for v, or nil when
// v requests its own active engines.
func (c *Config) FixedEngines(v core.Vertical) core.Engines {
	switch v {
	case core.VerticalVideo:
		return c.VideoEngines
	case core.VerticalSocial:
		return c.SocialEngines
	default:
		return nil
	}
}

// Normalize ensures the configuration is in a canonical form.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.DefaultLang = strings.ToLower(strings.TrimSpace(c.DefaultLang))
	if c.Personalization != core.PersonalizationOff {
		c.Personalization = core.PersonalizationOn
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.BaseURL == "" {
		return errors.New("session config: BaseURL is required")
	}
	for _, n := range []int{c.TextPerPage, c.ImagePerPage, c.VideoPerPage, c.SocialPerPage} {
		if n < 1 {
			return errors.New("session config: results per page must be positive")
		}
	}
	if c.Clusters < 1 {
		return errors.New("session config: Clusters must be positive")
	}
	return nil
}
