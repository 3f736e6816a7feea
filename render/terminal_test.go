package render

import (
	"errors"
	"testing"

	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/query"
	"github.com/poiesic/seekr/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()
	term, err := NewTerminal(WithStyle("notty"), WithWidth(100))
	require.NoError(t, err)
	return term
}

func TestTerminalMarkdownFlat(t *testing.T) {
	term := newTestTerminal(t)
	st := flatState(core.VerticalText, core.PersonalizationOff,
		&core.Snippet{ID: "a", URL: "http://a.test", Title: "First <b>hit</b>", Summary: "about go_lang", SeeksMeta: 2, Engines: core.Engines{"google"}},
		&core.Snippet{ID: "b", URL: "http://b.test", SeeksMeta: 1, Personalized: true},
	)

	md := term.Markdown(st)
	assert.Contains(t, md, "# hello world")
	assert.Contains(t, md, "*text* · lang `en` · expansion 2 · personalization off")
	assert.Contains(t, md, "Did you mean **hello worlds**?")
	assert.Contains(t, md, "1. [First hit](http://a.test)\n   about go\\_lang\n   _google_\n")
	assert.Contains(t, md, "2. [http://b.test](http://b.test) ★")
	assert.Contains(t, md, "page 1 of 1")
}

func TestTerminalMarkdownClusters(t *testing.T) {
	term := newTestTerminal(t)
	c1 := 1
	view := results.Aggregate([]*core.Snippet{{ID: "a", Title: "A", URL: "http://a.test", Cluster: &c1}},
		results.Options{ClusterCount: 2, Labels: []string{"empty", "full"}})

	md := term.Markdown(State{View: view, Query: query.Context{Query: "q"}})
	assert.Contains(t, md, "## full (1)")
	assert.NotContains(t, md, "empty")
	assert.NotContains(t, md, "page ")
}

func TestTerminalMarkdownEmpty(t *testing.T) {
	term := newTestTerminal(t)
	md := term.Markdown(State{Page: results.Page{Number: 1, MaxPage: 1}})
	assert.Contains(t, md, "No results.")
}

func TestTerminalRender(t *testing.T) {
	term := newTestTerminal(t)
	st := flatState(core.VerticalText, core.PersonalizationOff, &core.Snippet{ID: "a", URL: "http://a.test", Title: "Findme"})

	out, err := term.Render(st)
	require.NoError(t, err)
	assert.Contains(t, out, "Findme")

	out, err = term.RenderFailure(errors.New("backend down"))
	require.NoError(t, err)
	assert.Contains(t, out, "backend down")
}
