package session

import (
	"context"
	"fmt"

	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/query"
	"github.com/poiesic/seekr/results"
)

// Start issues the initial fetch for raw on the text vertical.
func (s *Session) Start(ctx context.Context, raw string) error {
	next := query.NewContext(raw, s.cfg.DefaultLang)
	s.active = core.VerticalText
	vs := s.verticals[core.VerticalText]

	u := newRequestURL("/search").
		set("q", raw).
		setInt("expansion", 1).
		set("action", actionExpand).
		setInt("rpp", vs.PerPage).
		set("content_analysis", vs.ContentAnalysis).
		set("prs", string(core.PersonalizationOn)).
		set("output", "json")
	return s.refreshQuery(ctx, "start", core.VerticalText, u.String(s.cfg.BaseURL), next)
}

// Submit handles a query submission. A leading language directive in raw
// wins over langInput, which wins over the current language when it differs.
// When the query or language changed, the store is cleared, every vertical is
// reset and a fetch is issued for the active vertical; the new query becomes
// current once that fetch succeeds. The page is always
// reset to 1 and the view redrawn. Submit reports whether a fetch was issued.
func (s *Session) Submit(ctx context.Context, raw, langInput string) (bool, error) {
	n := query.Normalize(raw)
	lang := s.query.Lang
	switch {
	case n.HasOverride():
		lang = n.Lang
	case langInput != "" && langInput != s.query.Lang:
		lang = langInput
	}
	next := query.Context{Raw: raw, Query: n.Query, Lang: lang}

	vs := s.verticals[s.active]
	fetched := false
	if !next.Same(s.query) {
		engines := s.cfg.FixedEngines(s.active)
		if engines == nil {
			engines = vs.Engines
		}
		u := newRequestURL(searchPath(s.active)).
			set("q", raw).
			setInt("expansion", 1).
			set("lang", lang).
			set("action", actionExpand).
			setInt("rpp", vs.PerPage).
			set("prs", string(core.PersonalizationOn)).
			set("content_analysis", vs.ContentAnalysis).
			dyn().
			withEngineSet(engines)

		if err := s.store.Clear(ctx); err != nil {
			return false, s.fail(fmt.Errorf("clearing result store: %w", err))
		}
		for _, v := range s.verticals {
			v.Reset()
		}
		if err := s.refreshQuery(ctx, "submit", s.active, u.String(s.cfg.BaseURL), next); err != nil {
			return false, err
		}
		fetched = true
	} else {
		s.query.Raw = raw
	}

	vs.Page = 1
	s.clustered = 0
	return fetched, s.Render(ctx)
}

// Expand requests the next expansion level of the active vertical.
func (s *Session) Expand(ctx context.Context) error {
	vs := s.verticals[s.active]
	s.clustered = 0
	u := s.expandURL(vs, vs.NextExpansion, s.enginesFor(vs))
	return s.refresh(ctx, "expand", s.active, u.String(s.cfg.BaseURL))
}

// Cluster requests a clusterized view of the active vertical. It reports
// false without fetching when the vertical does not support clustering.
func (s *Session) Cluster(ctx context.Context) (bool, error) {
	if !s.active.SupportsClustering() {
		return false, nil
	}
	vs := s.verticals[s.active]
	u := newRequestURL("/search").
		set("q", s.requested().Raw).
		setInt("expansion", vs.Expansion).
		set("lang", s.requested().Lang).
		set("action", actionClusterize).
		setInt("clusters", vs.Clusters).
		set("prs", string(vs.Personalization)).
		set("content_analysis", vs.ContentAnalysis).
		dyn()
	return true, s.refresh(ctx, "cluster", s.active, u.String(s.cfg.BaseURL))
}

// TogglePersonalization re-requests the active vertical with personalization
// flipped. The new state takes effect when the response arrives.
func (s *Session) TogglePersonalization(ctx context.Context) error {
	vs := s.verticals[s.active]
	s.clustered = 0
	u := newRequestURL("/search").
		set("q", s.requested().Raw).
		setInt("expansion", vs.Expansion).
		set("lang", s.requested().Lang).
		set("action", actionExpand).
		setInt("rpp", vs.PerPage).
		set("prs", string(vs.Personalization.Toggle())).
		set("content_analysis", vs.ContentAnalysis).
		dyn().
		withEngineSet(vs.Engines)
	return s.refresh(ctx, "personalization", s.active, u.String(s.cfg.BaseURL))
}

// SwitchVertical activates v. A fetch is issued only when v holds no results
// for the current query; otherwise the view is redrawn from the store.
// SwitchVertical reports whether a fetch was issued.
func (s *Session) SwitchVertical(ctx context.Context, v core.Vertical) (bool, error) {
	vs, ok := s.verticals[v]
	if !ok {
		return false, core.ErrInvalidVertical
	}
	s.active = v
	s.clustered = 0

	if vs.Fetched() {
		return false, s.Render(ctx)
	}

	engines := s.cfg.FixedEngines(v)
	u := s.expandURL(vs, vs.Expansion, engines)
	if engines == nil {
		u.withEngines = false
	}
	return true, s.refresh(ctx, "switch", v, u.String(s.cfg.BaseURL))
}

// Types requests the result type breakdown of the current query.
func (s *Session) Types(ctx context.Context) error {
	u := newRequestURL("/search").
		set("q", s.requested().Raw).
		set("action", actionTypes).
		set("lang", s.requested().Lang).
		dyn()
	return s.refresh(ctx, "types", s.active, u.String(s.cfg.BaseURL))
}

// NextPage advances the active vertical one page. It reports false and
// leaves the page unchanged when already on the last page.
func (s *Session) NextPage(ctx context.Context) (bool, error) {
	return s.turnPage(ctx, 1)
}

// PrevPage moves the active vertical back one page. It reports false and
// leaves the page unchanged when already on the first page.
func (s *Session) PrevPage(ctx context.Context) (bool, error) {
	return s.turnPage(ctx, -1)
}

func (s *Session) turnPage(ctx context.Context, delta int) (bool, error) {
	vs := s.verticals[s.active]
	maxPage, err := s.maxPage(ctx, vs)
	if err != nil {
		return false, s.fail(err)
	}
	page := vs.Page + delta
	if page < 1 || page > maxPage {
		return false, nil
	}
	vs.Page = page
	return true, s.Render(ctx)
}

func (s *Session) maxPage(ctx context.Context, vs *VerticalState) (int, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return 0, err
	}
	return results.MaxPage(len(results.Filter(all, vs.Vertical)), vs.PerPage), nil
}

func (s *Session) enginesFor(vs *VerticalState) core.Engines {
	if fixed := s.cfg.FixedEngines(vs.Vertical); fixed != nil {
		return fixed
	}
	return vs.Engines
}

func (s *Session) expandURL(vs *VerticalState, expansion int, engines core.Engines) *requestURL {
	return newRequestURL(searchPath(vs.Vertical)).
		set("q", s.requested().Raw).
		setInt("expansion", expansion).
		set("lang", s.requested().Lang).
		set("action", actionExpand).
		setInt("rpp", vs.PerPage).
		set("prs", string(vs.Personalization)).
		set("content_analysis", vs.ContentAnalysis).
		dyn().
		withEngineSet(engines)
}
