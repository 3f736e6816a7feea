package render

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Highlight wraps case-insensitive occurrences of query words in <b> and of
// snippet words in <span class="highlight">. Only text nodes are rewritten,
// so tags and attributes in markup are never matched. markup must already
// be sanitized.
func Highlight(markup string, queryWords, snippetWords []string) (string, error) {
	if len(queryWords) == 0 && len(snippetWords) == 0 {
		return markup, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	if re := wordPattern(queryWords); re != nil {
		wrapMatches(body, re, func() *html.Node {
			return &html.Node{Type: html.ElementNode, Data: "b", DataAtom: atom.B}
		})
	}
	if re := wordPattern(snippetWords); re != nil {
		wrapMatches(body, re, func() *html.Node {
			return &html.Node{
				Type:     html.ElementNode,
				Data:     "span",
				DataAtom: atom.Span,
				Attr:     []html.Attribute{{Key: "class", Val: "highlight"}},
			}
		})
	}

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// wordPattern builds a case-insensitive alternation of words, longest first.
// Returns nil when no usable word remains.
func wordPattern(words []string) *regexp.Regexp {
	var quoted []string
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	slices.SortStableFunc(quoted, func(a, b string) int { return len(b) - len(a) })
	return regexp.MustCompile("(?i)(?:" + strings.Join(quoted, "|") + ")")
}

// wrapMatches replaces each text node under root with text and wrapper
// elements around every match of re. Text already inside a wrapper of the
// same kind is left alone.
func wrapMatches(root *html.Node, re *regexp.Regexp, wrapper func() *html.Node) {
	kind := wrapper()
	var texts []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == kind.DataAtom && sameAttrs(n, kind) {
			return
		}
		if n.Type == html.TextNode {
			texts = append(texts, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for _, t := range texts {
		locs := re.FindAllStringIndex(t.Data, -1)
		if len(locs) == 0 {
			continue
		}
		parent := t.Parent
		prev := 0
		for _, loc := range locs {
			if loc[0] > prev {
				parent.InsertBefore(&html.Node{Type: html.TextNode, Data: t.Data[prev:loc[0]]}, t)
			}
			w := wrapper()
			w.AppendChild(&html.Node{Type: html.TextNode, Data: t.Data[loc[0]:loc[1]]})
			parent.InsertBefore(w, t)
			prev = loc[1]
		}
		if prev < len(t.Data) {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: t.Data[prev:]}, t)
		}
		parent.RemoveChild(t)
	}
}

func sameAttrs(a, b *html.Node) bool {
	return slices.Equal(a.Attr, b.Attr)
}
