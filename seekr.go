// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package seekr

import (
	"log/slog"

	"github.com/poiesic/seekr/session"
	"github.com/poiesic/seekr/storage"
	"github.com/poiesic/seekr/storage/badger"
	"github.com/poiesic/seekr/transport"
)

// Client owns the Result Store and the fetcher shared by the sessions it
// creates.
type Client struct {
	backend    *badger.Backend
	repo       storage.SnippetRepository
	fetcher    *transport.Fetcher
	sessionCfg *session.Config
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	dbPath        string
	sessionConfig *session.Config
	fetcherOpts   []transport.Option
	logger        *slog.Logger
}

// WithDatabase keeps the Result Store on disk at path instead of in memory.
func WithDatabase(path string) ClientOption {
	return func(o *clientOptions) {
		o.dbPath = path
	}
}

// WithSessionConfig sets the configuration of sessions created by the client.
func WithSessionConfig(cfg *session.Config) ClientOption {
	return func(o *clientOptions) {
		o.sessionConfig = cfg
	}
}

// WithFetcherOptions passes options through to the fetcher.
func WithFetcherOptions(opts ...transport.Option) ClientOption {
	return func(o *clientOptions) {
		o.fetcherOpts = append(o.fetcherOpts, opts...)
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

func NewClient(opts ...ClientOption) (*Client, error) {
	// Apply options
	options := &clientOptions{
		sessionConfig: session.DefaultConfig(), // Default if not provided
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if err := options.sessionConfig.Validate(); err != nil {
		return nil, err
	}

	// Open backend
	backend, err := badger.OpenBackend(options.dbPath, options.dbPath == "", badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	// Create snippet repository
	repo, err := badger.NewSnippetRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create fetcher, caller options last so they win
	fetcherOpts := append([]transport.Option{transport.WithLogger(options.logger)}, options.fetcherOpts...)
	fetcher, err := transport.NewFetcher(fetcherOpts...)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Client{
		backend:    backend,
		repo:       repo,
		fetcher:    fetcher,
		sessionCfg: options.sessionConfig,
		logger:     options.logger,
	}, nil
}

func (c *Client) Close() error {
	// Stop accepting fetches first
	c.fetcher.Release()

	if err := c.repo.Close(); err != nil {
		c.logger.Error("error closing snippet repository", "err", err)
		return err
	}

	// Close backend
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (c *Client) Repository() storage.SnippetRepository {
	return c.repo
}

func (c *Client) Fetcher() *transport.Fetcher {
	return c.fetcher
}

// NewSession creates a session over the client's store and fetcher that
// displays through view.
func (c *Client) NewSession(view session.View, opts ...session.Option) (*session.Session, error) {
	base := []session.Option{session.WithConfig(c.sessionCfg), session.WithLogger(c.logger)}
	return session.NewSession(c.repo, c.fetcher, view, append(base, opts...)...)
}
