package session

import (
	"context"
	"fmt"

	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/query"
)

// apply merges one completion into the session. It reports whether c was
// the completion of the fetch in flight.
func (s *Session) apply(ctx context.Context, c completion) (bool, error) {
	if s.pending == nil || s.pending.token != c.req.token {
		s.monitor.FetchDropped(c.req.trigger)
		s.logger.Debug("dropping stale completion", "trigger", c.req.trigger, "token", c.req.token)
		return false, nil
	}
	s.pending = nil

	if c.err != nil {
		return true, s.failFetch(c.req, c.err)
	}
	resp := c.resp
	if err := core.ValidateResponse(resp); err != nil {
		return true, s.failFetch(c.req, err)
	}

	snippets := s.collect(resp)
	added, err := s.store.Upsert(ctx, snippets...)
	if err != nil {
		return true, s.failFetch(c.req, fmt.Errorf("storing snippets: %w", err))
	}

	if resp.Clustered() {
		s.clustered = len(resp.Clusters)
		s.labels = make([]string, len(resp.Clusters))
		for i, cl := range resp.Clusters {
			s.labels[i] = cl.Label
		}
	} else {
		s.clustered = 0
		s.labels = nil
	}

	s.updateVertical(s.verticals[c.req.vertical], resp)

	if c.req.query != nil {
		s.query = *c.req.query
	}
	if resp.Lang != nil {
		s.query.Lang = *resp.Lang
	}
	s.query.Query = query.Normalize(*resp.Query).Query

	s.monitor.FetchApplied(c.req.trigger, resp, added)
	s.logger.Debug("fetch applied", "trigger", c.req.trigger, "snippets", len(snippets), "added", added)

	return true, s.Render(ctx)
}

// collect returns the valid snippets of resp. Snippets of a clusterized
// response are tagged with their cluster index.
func (s *Session) collect(resp *core.Response) []*core.Snippet {
	var out []*core.Snippet
	keep := func(sn *core.Snippet, cluster *int) {
		if err := core.NormalizeSnippet(sn); err != nil {
			s.logger.Warn("skipping invalid snippet", "err", err)
			return
		}
		sn.Cluster = cluster
		out = append(out, sn)
	}

	if resp.Clustered() {
		for i, cl := range resp.Clusters {
			for _, sn := range cl.Snippets {
				idx := i
				keep(sn, &idx)
			}
		}
		return out
	}

	for _, sn := range resp.Snippets {
		keep(sn, nil)
	}
	return out
}

// updateVertical copies the fields present in resp into vs.
func (s *Session) updateVertical(vs *VerticalState, resp *core.Response) {
	if resp.Expansion != nil {
		vs.setExpansion(resp.Expansion.Int())
	}
	if resp.Suggestion != nil {
		vs.Suggestion = *resp.Suggestion
	}
	if resp.Pers != nil {
		vs.Personalization = *resp.Pers
	}
	switch {
	case resp.Engines != nil && len(*resp.Engines) > 0:
		vs.Engines = *resp.Engines
	case !vs.Fetched():
		vs.Engines = s.cfg.FixedEngines(vs.Vertical)
	}
}

func (s *Session) failFetch(req inflight, err error) error {
	s.monitor.FetchFailed(req.trigger, err)
	s.logger.Error("fetch failed", "trigger", req.trigger, "url", req.url, "err", err)
	return s.fail(err)
}
