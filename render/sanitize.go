package render

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizer cleans backend-supplied markup before it reaches a template.
type sanitizer struct {
	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

func newSanitizer() *sanitizer {
	return &sanitizer{
		strict: bluemonday.StrictPolicy(),
		ugc:    bluemonday.UGCPolicy(),
	}
}

// Title strips every tag and returns escaped text.
func (s *sanitizer) Title(title string) string {
	return s.strict.Sanitize(title)
}

// Summary keeps inline formatting and drops scripts, handlers and the like.
func (s *sanitizer) Summary(summary string) string {
	return s.ugc.Sanitize(summary)
}

// Text strips every tag and returns plain, unescaped text.
func (s *sanitizer) Text(markup string) string {
	return html.UnescapeString(s.strict.Sanitize(markup))
}
