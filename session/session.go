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


package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/query"
	"github.com/poiesic/seekr/render"
	"github.com/poiesic/seekr/results"
	"github.com/poiesic/seekr/storage"
)

// tokenPrefix starts every correlation token.
const tokenPrefix = "seekr_"

// Fetcher issues backend requests asynchronously. done is called once per
// successful Fetch call, from any goroutine.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, token string, done func(*core.Response, error)) error
}

// View displays rendered session state.
type View interface {
	Render(st render.State) error
	RenderFailure(err error) error
}

// inflight is the request whose completion the session is waiting for.
type inflight struct {
	token    string
	trigger  string
	url      string
	vertical core.Vertical
	// query is committed to the session when the fetch succeeds.
	query *query.Context
}

// completion is a fetch outcome queued by the fetcher callback.
type completion struct {
	req  inflight
	resp *core.Response
	err  error
}

// Session aggregates backend responses for one user search.
type Session struct {
	cfg     *Config
	store   storage.SnippetRepository
	fetcher Fetcher
	view    View
	monitor Monitor
	logger  *slog.Logger

	query     query.Context
	active    core.Vertical
	verticals map[core.Vertical]*VerticalState
	clustered int
	labels    []string
	pending   *inflight

	mu     sync.Mutex
	queue  []completion
	notify chan struct{}
}

// Option is a functional option for configuring a Session.
type Option func(*Session) error

// WithConfig sets the session configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Session) error {
		if cfg == nil {
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		s.cfg = cfg
		return nil
	}
}

// WithLogger sets the logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "session")
		return nil
	}
}

// WithMonitor sets the fetch lifecycle monitor.
func WithMonitor(m Monitor) Option {
	return func(s *Session) error {
		if m == nil {
			m = &noopMonitor{}
		}
		s.monitor = m
		return nil
	}
}

// NewSession creates a session over store that fetches through fetcher and
// displays through view.
func NewSession(store storage.SnippetRepository, fetcher Fetcher, view View, opts ...Option) (*Session, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if view == nil {
		return nil, ErrViewRequired
	}

	s := &Session{
		cfg:     DefaultConfig(),
		store:   store,
		fetcher: fetcher,
		view:    view,
		monitor: &noopMonitor{},
		logger:  slog.Default().With("component", "session"),
		active:  core.VerticalText,
		notify:  make(chan struct{}, 1),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.verticals = make(map[core.Vertical]*VerticalState, len(core.Verticals))
	for _, v := range core.Verticals {
		s.verticals[v] = newVerticalState(v, s.cfg)
	}
	s.query = query.Context{Lang: s.cfg.DefaultLang}

	return s, nil
}

// Query returns the current query context.
func (s *Session) Query() query.Context {
	return s.query
}

// requested returns the query context of the fetch in flight when it
// carries one, the current context otherwise.
func (s *Session) requested() query.Context {
	if s.pending != nil && s.pending.query != nil {
		return *s.pending.query
	}
	return s.query
}

// Active returns the active vertical.
func (s *Session) Active() core.Vertical {
	return s.active
}

// Vertical returns a copy of the state of v.
func (s *Session) Vertical(v core.Vertical) VerticalState {
	return *s.verticals[v]
}

// Clustered returns the number of cluster buckets, zero in flat mode.
func (s *Session) Clustered() int {
	return s.clustered
}

// Pending reports whether a fetch is in flight.
func (s *Session) Pending() bool {
	return s.pending != nil
}

// Refresh issues a fetch of rawURL on behalf of the active vertical. The
// callback placeholder in rawURL is replaced by a fresh correlation token,
// superseding any fetch still in flight.
func (s *Session) Refresh(ctx context.Context, rawURL string) error {
	return s.refresh(ctx, "refresh", s.active, rawURL)
}

func (s *Session) refresh(ctx context.Context, trigger string, v core.Vertical, rawURL string) error {
	return s.issue(ctx, inflight{trigger: trigger, vertical: v}, rawURL)
}

// refreshQuery issues a fetch for a new query context. The session keeps its
// current context until the response is applied.
func (s *Session) refreshQuery(ctx context.Context, trigger string, v core.Vertical, rawURL string, next query.Context) error {
	return s.issue(ctx, inflight{trigger: trigger, vertical: v, query: &next}, rawURL)
}

func (s *Session) issue(ctx context.Context, req inflight, rawURL string) error {
	req.token = tokenPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	req.url = strings.Replace(rawURL, CallbackPlaceholder, req.token, 1)
	if req.query == nil && s.pending != nil {
		req.query = s.pending.query
	}
	trigger := req.trigger

	s.pending = &req
	s.monitor.FetchStarted(trigger, req.url)
	s.logger.Debug("fetch started", "trigger", trigger, "url", req.url)

	err := s.fetcher.Fetch(ctx, req.url, req.token, func(resp *core.Response, err error) {
		s.enqueue(completion{req: req, resp: resp, err: err})
	})
	if err != nil {
		s.pending = nil
		s.monitor.FetchFailed(trigger, err)
		s.logger.Error("error issuing fetch", "trigger", trigger, "err", err)
		return s.fail(err)
	}
	return nil
}

func (s *Session) enqueue(c completion) {
	s.mu.Lock()
	s.queue = append(s.queue, c)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Session) dequeue() []completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	queued := s.queue
	s.queue = nil
	return queued
}

// Wait blocks until the fetch in flight completes and applies it. Stale
// completions received meanwhile are dropped. It returns the fetch or
// validation error when the fetch failed.
func (s *Session) Wait(ctx context.Context) error {
	if s.pending == nil {
		return ErrNothingPending
	}
	for {
		if done, err := s.applyQueued(ctx); done {
			return err
		}
		select {
		case <-s.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ApplyPending applies every completion received so far without blocking.
func (s *Session) ApplyPending(ctx context.Context) error {
	_, err := s.applyQueued(ctx)
	return err
}

// applyQueued applies queued completions and reports whether the one in
// flight was among them.
func (s *Session) applyQueued(ctx context.Context) (bool, error) {
	var (
		done bool
		errs []error
	)
	for _, c := range s.dequeue() {
		applied, err := s.apply(ctx, c)
		done = done || applied
		if err != nil {
			errs = append(errs, err)
		}
	}
	return done, errors.Join(errs...)
}

// State projects the store and the active vertical into a render state.
func (s *Session) State(ctx context.Context) (render.State, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return render.State{}, err
	}

	vs := s.verticals[s.active]
	view := results.Aggregate(all, results.Options{
		Vertical:        s.active,
		Personalization: vs.Personalization,
		ClusterCount:    s.clustered,
		Labels:          s.labels,
	})

	return render.State{
		Vertical:        s.active,
		Query:           s.query,
		View:            view,
		Page:            results.Paginate(view.Flat, vs.PerPage, vs.Page),
		Expansion:       vs.Expansion,
		Personalization: vs.Personalization,
		Suggestion:      vs.Suggestion,
	}, nil
}

// Render redraws the view from the current state.
func (s *Session) Render(ctx context.Context) error {
	st, err := s.State(ctx)
	if err != nil {
		s.logger.Error("error reading result store", "err", err)
		return s.fail(err)
	}
	if err := s.view.Render(st); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}
	return nil
}

// fail shows the failure placeholder and returns err.
func (s *Session) fail(err error) error {
	if viewErr := s.view.RenderFailure(err); viewErr != nil {
		s.logger.Error("error rendering failure", "err", viewErr)
	}
	return err
}
