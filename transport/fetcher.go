package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/seekr/core"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxBodySize = 8 << 20
)

// Completion receives the outcome of one fetch.
type Completion = func(resp *core.Response, err error)

// Fetcher issues asynchronous GETs on a worker pool.
type Fetcher struct {
	client      *http.Client
	pool        *ants.Pool
	maxBodySize int64
	userAgent   string
	logger      *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(f *Fetcher) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if f.pool != nil {
			f.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		f.pool = pool
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) error {
		if client != nil {
			f.client = client
		}
		return nil
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) error {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
		return nil
	}
}

// WithMaxBodySize caps the response body size. Default is 8 MiB.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) error {
		if size > 0 {
			f.maxBodySize = size
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with each fetch.
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) error {
		f.userAgent = userAgent
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewFetcher creates a new fetcher.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		client:      &http.Client{Timeout: defaultTimeout},
		pool:        pool,
		maxBodySize: defaultMaxBodySize,
		userAgent:   "seekr",
		logger:      slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(f); optErr != nil {
			f.Release()
			return nil, optErr
		}
	}

	return f, nil
}

// Fetch submits a GET of rawURL to the pool and returns immediately. done is
// called exactly once from a pool goroutine, unless Fetch itself returns an
// error, in which case done is never called.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, token string, done Completion) error {
	if done == nil {
		return ErrCompletionRequired
	}
	return f.pool.Submit(func() {
		resp, err := f.Get(ctx, rawURL, token)
		done(resp, err)
	})
}

// Get performs a GET of rawURL synchronously and decodes the payload.
func (f *Fetcher) Get(ctx context.Context, rawURL, token string) (*core.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/javascript")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	start := time.Now()
	res, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("error fetching results", "url", rawURL, "err", err)
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		f.logger.Warn("unexpected status fetching results", "url", rawURL, "status", res.StatusCode)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, f.maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, ErrPayloadTooLarge
	}

	resp, err := Decode(body, token)
	if err != nil {
		f.logger.Warn("error decoding results", "url", rawURL, "err", err)
		return nil, err
	}

	f.logger.Debug("fetched results", "url", rawURL, "bytes", len(body), "elapsed", time.Since(start))
	return resp, nil
}

// Running returns the number of fetches currently executing.
func (f *Fetcher) Running() int {
	return f.pool.Running()
}

// Release releases the worker pool. The fetcher should not be used after
// calling Release.
func (f *Fetcher) Release() {
	if f.pool != nil {
		f.pool.Release()
	}
}

// IsClosed reports whether err means the fetcher was released.
func IsClosed(err error) bool {
	return errors.Is(err, ants.ErrPoolClosed)
}
