package query

import (
	"net/url"
	"strings"
)

// Context is the query state of a search session.
type Context struct {
	// Raw is the query as typed, directive included.
	Raw string
	// Query is the normalized query.
	Query string
	// Lang is the two-letter language code of the session.
	Lang string
}

// NewContext builds a context from a raw query. A directive in the raw query
// wins over defaultLang.
func NewContext(raw, defaultLang string) Context {
	n := Normalize(raw)
	lang := defaultLang
	if n.HasOverride() {
		lang = n.Lang
	}
	return Context{Raw: raw, Query: n.Query, Lang: lang}
}

// Token returns the correlation token ":<lang>+<escaped query>" embedded in
// generated links. The token is already escaped and must be placed in URLs
// verbatim.
func (c Context) Token() string {
	return Token(c.Lang, c.Query)
}

// Same reports whether two contexts address the same (query, language) pair.
func (c Context) Same(other Context) bool {
	return c.Query == other.Query && c.Lang == other.Lang
}

// Words splits the normalized query on single spaces.
func (c Context) Words() []string {
	var words []string
	for _, w := range strings.Split(c.Query, " ") {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Token builds a correlation token from a language and a query.
func Token(lang, q string) string {
	return string(DirectivePrefix) + lang + "+" + EncodeComponent(q)
}

// EncodeComponent escapes s for use as a single URL component. Spaces become
// %20 rather than '+', since '+' separates the token's language and query.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
