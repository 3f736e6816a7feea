package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/results"
)

// Theme selects the page layout variant.
type Theme string

const (
	ThemeOriginal Theme = "original"
	ThemeCompact  Theme = "compact"
)

// ParseTheme parses a theme name.
func ParseTheme(name string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(name))); t {
	case ThemeOriginal, ThemeCompact:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, name)
	}
}

// starIconPath is the compact theme's personalization icon, relative to the
// base URL, with the flag value spliced in before the extension.
const starIconPath = "/plugins/websearch/public/themes/compact/images/perso_star_ico_"

// Renderer projects State onto a Document.
type Renderer struct {
	templates *template.Template
	sanitizer *sanitizer
	theme     Theme
	baseURL   string
	failure   string
	logger    *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTheme selects the theme. Default is ThemeOriginal.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) error {
		if _, err := ParseTheme(string(theme)); err != nil {
			return err
		}
		r.theme = theme
		return nil
	}
}

// WithBaseURL sets the prefix of engine badge, click-capture and icon URLs.
// Default is "" (site-relative links).
func WithBaseURL(baseURL string) Option {
	return func(r *Renderer) error {
		r.baseURL = strings.TrimRight(baseURL, "/")
		return nil
	}
}

// WithFailurePlaceholder sets the markup shown when a fetch fails.
// Default is "".
func WithFailurePlaceholder(markup string) Option {
	return func(r *Renderer) error {
		r.failure = markup
		return nil
	}
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) (*Renderer, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		templates: templates,
		sanitizer: newSanitizer(),
		theme:     ThemeOriginal,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Theme returns the configured theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render writes the results body and every indicator for st into doc.
func (r *Renderer) Render(doc Document, st State) error {
	if doc == nil {
		return ErrDocumentRequired
	}

	body, err := r.Body(st)
	if err != nil {
		return err
	}
	doc.SetContent(RoleResults, body)

	r.renderPaging(doc, st)

	doc.SetContent(RoleExpansion, strconv.Itoa(st.Expansion))
	doc.SetClass(RoleExpansion, "expansion_"+strconv.Itoa(st.Expansion))

	flag, err := r.persFlag(st.Personalization)
	if err != nil {
		return err
	}
	doc.SetContent(RolePersFlag, flag)

	if r.theme == ThemeCompact {
		doc.SetValue(RoleLanguage, st.Query.Lang)
	} else {
		doc.SetContent(RoleLanguage, html.EscapeString(st.Query.Lang))
	}

	doc.SetContent(RoleSuggestion, html.EscapeString(st.Suggestion))
	return nil
}

// RenderFailure replaces the results body with the failure placeholder and
// leaves every other element alone.
func (r *Renderer) RenderFailure(doc Document) error {
	if doc == nil {
		return ErrDocumentRequired
	}
	doc.SetContent(RoleResults, r.failure)
	return nil
}

// Body renders the results markup alone.
func (r *Renderer) Body(st State) (string, error) {
	view := st.View
	if view == nil {
		view = &results.View{}
	}

	l := newLinks(r.baseURL, r.theme, st.Vertical)
	words := st.Query.Words()
	name := st.Vertical.String()

	renderItems := func(snippets []*core.Snippet) ([]template.HTML, error) {
		items := make([]template.HTML, 0, len(snippets))
		for _, s := range snippets {
			v, err := r.buildSnippetView(s, st, l, words)
			if err != nil {
				return nil, err
			}
			item, err := r.execute(name, v)
			if err != nil {
				return nil, err
			}
			items = append(items, template.HTML(item))
		}
		return items, nil
	}

	if view.Clustered() {
		left, right := results.Columns(view.Buckets)
		build := func(buckets []results.Bucket) ([]clusterView, error) {
			var out []clusterView
			for _, b := range buckets {
				// Empty clusters are not shown
				if b.Len() == 0 {
					continue
				}
				items, err := renderItems(b.Snippets)
				if err != nil {
					return nil, err
				}
				out = append(out, clusterView{Label: b.Label, Size: b.Len(), Items: items})
			}
			return out, nil
		}
		lv, err := build(left)
		if err != nil {
			return "", err
		}
		rv, err := build(right)
		if err != nil {
			return "", err
		}
		return r.execute("clusters", struct{ Left, Right []clusterView }{lv, rv})
	}

	items, err := renderItems(st.Page.Items)
	if err != nil {
		return "", err
	}
	return r.execute("flat", items)
}

// renderPaging writes the page indicator and prev/next visibility. Paging
// controls are hidden while the view is clustered.
func (r *Renderer) renderPaging(doc Document, st State) {
	page := strconv.Itoa(st.Page.Number)
	clustered := st.View != nil && st.View.Clustered()
	prev := !clustered && st.Page.HasPrev()
	next := !clustered && st.Page.HasNext()

	doc.SetContent(RolePageCurrent, page)
	doc.SetVisible(RolePagePrev, prev)
	doc.SetVisible(RolePageNext, next)

	if r.theme == ThemeCompact {
		doc.SetContent(RolePageCurrentTop, page)
		doc.SetVisible(RolePagePrevTop, prev)
		doc.SetVisible(RolePageNextTop, next)
	}
}

func (r *Renderer) persFlag(p core.Personalization) (string, error) {
	if r.theme != ThemeCompact {
		return html.EscapeString(string(p)), nil
	}
	return r.execute("star", r.baseURL+starIconPath+string(p)+".png")
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("error executing template", "template", name, "err", err)
		return "", fmt.Errorf("%w: %w", ErrTemplateFailed, err)
	}
	return buf.String(), nil
}
