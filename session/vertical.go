package session

import "github.com/poiesic/seekr/core"

// VerticalState is the paging, engine and expansion state of one vertical.
type VerticalState struct {
	Vertical core.Vertical
	// PerPage is fixed per vertical and survives Reset.
	PerPage int
	// Page is the 1-based current page.
	Page int
	// Engines is the active engine set; empty means the vertical was never
	// fetched for the current query.
	Engines core.Engines
	// Expansion is the current expansion level, NextExpansion the one the
	// expand control requests.
	Expansion     int
	NextExpansion int
	// Personalization survives Reset.
	Personalization core.Personalization
	// ContentAnalysis survives Reset.
	ContentAnalysis string
	// Clusters is the number of clusters requested in clusterize mode.
	Clusters   int
	Suggestion string
}

func newVerticalState(v core.Vertical, cfg *Config) *VerticalState {
	vs := &VerticalState{
		Vertical:        v,
		PerPage:         cfg.PerPage(v),
		Personalization: cfg.Personalization,
		ContentAnalysis: cfg.ContentAnalysis,
		Clusters:        cfg.Clusters,
	}
	vs.Reset()
	return vs
}

// Reset clears paging, engines, expansion and suggestion.
func (vs *VerticalState) Reset() {
	vs.Page = 1
	vs.Engines = nil
	vs.Expansion = 1
	vs.NextExpansion = 2
	vs.Suggestion = ""
}

// Fetched reports whether the vertical holds results for the current query.
func (vs *VerticalState) Fetched() bool {
	return len(vs.Engines) > 0
}

// setExpansion records the expansion level reported by the backend.
func (vs *VerticalState) setExpansion(n int) {
	vs.Expansion = n
	vs.NextExpansion = n + 1
}
