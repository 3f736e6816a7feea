package render

import (
	"html/template"

	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/query"
	"github.com/poiesic/seekr/results"
)

// State is the snapshot of session state the renderer projects.
type State struct {
	Vertical        core.Vertical
	Query           query.Context
	View            *results.View
	Page            results.Page
	Expansion       int
	Personalization core.Personalization
	Suggestion      string
}

// EngineBadge links a source engine to an engine-filtered re-query.
type EngineBadge struct {
	Name string
	Href string
}

// SnippetView is the template-facing form of a snippet.
type SnippetView struct {
	ID           core.ID
	Personalized bool
	URL          string
	Title        template.HTML
	Summary      template.HTML
	Cite         string
	Cached       string
	Archive      string
	Date         string
	Engines      []EngineBadge
	SimilarHref  string
}

// clusterView is the template-facing form of a cluster bucket.
type clusterView struct {
	Label string
	Size  int
	Items []template.HTML
}

// links builds the URLs embedded in rendered snippets.
type links struct {
	baseURL      string
	captureBase  string
	searchPath   string
	similarPath  string
	similarExtra string
}

func newLinks(baseURL string, theme Theme, vertical core.Vertical) links {
	l := links{
		baseURL:     baseURL,
		captureBase: baseURL,
		searchPath:  "/search",
		similarPath: "/search",
	}
	if theme == ThemeCompact {
		l.captureBase = ""
	}
	if vertical == core.VerticalImage {
		l.searchPath = "/search_img"
	}
	if vertical == core.VerticalSocial {
		l.similarExtra = "twitter,identica"
	}
	return l
}

// engine returns the engine-filtered re-query URL.
func (l links) engine(token, name string) string {
	return l.baseURL + l.searchPath + "?q=" + token + "&page=1&expansion=1&action=expand&engines=" + name
}

// similar returns the similarity re-query URL for a snippet id.
func (l links) similar(token string, id core.ID) string {
	return l.baseURL + l.similarPath + "?q=" + token + "&page=1&expansion=1&action=similarity&id=" + query.EncodeComponent(string(id)) + "&engines=" + l.similarExtra
}

// capture routes an outbound result URL through the click-capture endpoint.
func (l links) capture(token, target string) string {
	return l.captureBase + "/qc_redir?q=" + token + "&url=" + query.EncodeComponent(target)
}

// buildSnippetView converts a snippet for the template of the active vertical.
func (r *Renderer) buildSnippetView(s *core.Snippet, st State, l links, queryWords []string) (SnippetView, error) {
	token := st.Query.Token()

	v := SnippetView{
		ID:           s.ID,
		Personalized: bool(s.Personalized),
		URL:          s.URL,
		Title:        template.HTML(r.sanitizer.Title(s.Title)),
		Cite:         s.Cite,
		Cached:       s.Cached,
		Archive:      s.Archive,
		Date:         s.Date,
		SimilarHref:  l.similar(token, s.ID),
	}

	if st.Personalization == core.PersonalizationOn {
		v.URL = l.capture(token, s.URL)
	}

	for _, name := range s.Engines {
		v.Engines = append(v.Engines, EngineBadge{Name: name, Href: l.engine(token, name)})
	}

	summary := r.sanitizer.Summary(s.Summary)
	if r.theme == ThemeOriginal {
		var err error
		summary, err = Highlight(summary, queryWords, s.Words)
		if err != nil {
			return SnippetView{}, err
		}
	}
	v.Summary = template.HTML(summary)

	return v, nil
}
