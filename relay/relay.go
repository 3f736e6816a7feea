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


package relay

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Path markers matched anywhere in the backend URL.
const (
	// MarkerRedirectCapture flags click-capture redirects.
	MarkerRedirectCapture = "qc_redir"
	// MarkerPending flags the to-be-determined capture path.
	MarkerPending = "tbd"
	// MarkerBodySubmission flags actions whose request body is forwarded.
	MarkerBodySubmission = "/search/txt"
)

// HeaderRemoteLocation carries the caller's externally visible base URL.
const HeaderRemoteLocation = "Seeks-Remote-Location"

// Relay forwards requests under the mount point to the backend.
type Relay struct {
	cfg     *Config
	client  *http.Client
	metrics *Metrics
	logger  *slog.Logger
}

// Option is a functional option for configuring a Relay.
type Option func(*Relay) error

// WithLogger sets the logger for the relay.
func WithLogger(logger *slog.Logger) Option {
	return func(rl *Relay) error {
		if logger == nil {
			logger = slog.Default()
		}
		rl.logger = logger.With("component", "relay")
		return nil
	}
}

// WithMetrics sets the metrics the relay records into.
func WithMetrics(m *Metrics) Option {
	return func(rl *Relay) error {
		if m != nil {
			rl.metrics = m
		}
		return nil
	}
}

// WithHTTPClient replaces the backend client. Its transport should route
// through the proxy hop and it must not follow redirects.
func WithHTTPClient(client *http.Client) Option {
	return func(rl *Relay) error {
		if client != nil {
			rl.client = client
		}
		return nil
	}
}

// NewRelay creates a relay for cfg.
func NewRelay(cfg *Config, opts ...Option) (*Relay, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := newBackendClient(cfg)
	if err != nil {
		return nil, err
	}

	rl := &Relay{
		cfg:    cfg,
		client: client,
		logger: slog.Default().With("component", "relay"),
	}
	for _, opt := range opts {
		if err := opt(rl); err != nil {
			return nil, err
		}
	}
	if rl.metrics == nil {
		rl.metrics = NewMetrics()
	}
	return rl, nil
}

// newBackendClient builds a client that routes through the proxy hop and
// hands redirects back to the caller.
func newBackendClient(cfg *Config) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, nil
}

// Metrics returns the metrics the relay records into.
func (rl *Relay) Metrics() *Metrics {
	return rl.metrics
}

// ServeHTTP forwards r to the backend.
func (rl *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	base := rl.externalBase(r)
	rest := strings.TrimPrefix(r.URL.RequestURI(), rl.cfg.MountPath)
	if rest == "" {
		rl.metrics.observeRequest(outcomeLanding)
		http.Redirect(w, r, base+rl.cfg.LandingPath, http.StatusFound)
		return
	}

	target := rl.cfg.BackendURL + rest
	capture := strings.Contains(target, MarkerRedirectCapture) || strings.Contains(target, MarkerPending)

	var body io.Reader
	if strings.Contains(target, MarkerBodySubmission) && r.Body != nil {
		body = r.Body
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, body)
	if err != nil {
		rl.fail(w, target, err)
		return
	}
	req.Header.Set(HeaderRemoteLocation, base)
	req.Header.Set("Accept-Language", r.Header.Get("Accept-Language"))
	req.Header.Set("Referer", r.Header.Get("Referer"))
	if body != nil {
		req.ContentLength = r.ContentLength
		if ct := r.Header.Get("Content-Type"); ct != "" {
			req.Header.Set("Content-Type", ct)
		}
	}

	rl.logger.Debug("forwarding request", "method", r.Method, "url", target, "capture", capture)

	start := time.Now()
	resp, err := rl.client.Do(req)
	rl.metrics.observeBackend(r.Method, time.Since(start))
	if err != nil {
		rl.fail(w, target, err)
		return
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, rl.cfg.MaxBodySize+1))
	if err != nil {
		rl.fail(w, target, err)
		return
	}
	if int64(len(payload)) > rl.cfg.MaxBodySize {
		rl.fail(w, target, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, rl.cfg.MaxBodySize))
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}

	if capture {
		status, location := resp.StatusCode, resp.Header.Get("Location")
		if isRawHead(payload) {
			if head, err := scanHead(payload); err == nil {
				status, location = head.Status, head.Location
			}
		}
		if status == http.StatusFound {
			rl.metrics.observeRequest(outcomeRedirected)
			w.Header().Del("Content-Type")
			w.Header().Set("Location", location)
			w.WriteHeader(http.StatusFound)
			return
		}
		rl.metrics.observeUnexpected()
		rl.logger.Warn("unexpected status on capture path", "url", target, "status", status)
	}

	rl.metrics.observeRequest(outcomeEchoed)
	if location := resp.Header.Get("Location"); location != "" {
		w.Header().Set("Location", location)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, bytes.NewReader(payload)); err != nil {
		rl.logger.Debug("error writing response", "url", target, "err", err)
	}
}

// fail answers 502 with the transport error text.
func (rl *Relay) fail(w http.ResponseWriter, target string, err error) {
	rl.metrics.observeRequest(outcomeError)
	rl.logger.Error("backend call failed", "url", target, "err", err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	fmt.Fprintf(w, "relay error: %s", err)
}

// externalBase returns the caller-visible URL of the mount point.
func (rl *Relay) externalBase(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host + rl.cfg.MountPath
}
