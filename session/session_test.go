package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/render"
	"github.com/poiesic/seekr/storage"
	"github.com/poiesic/seekr/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchCall struct {
	url   string
	token string
	done  func(*core.Response, error)
}

type fakeFetcher struct {
	calls []fetchCall
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL, token string, done func(*core.Response, error)) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, fetchCall{url: rawURL, token: token, done: done})
	return nil
}

func (f *fakeFetcher) last(t *testing.T) fetchCall {
	t.Helper()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

type fakeView struct {
	states   []render.State
	failures []error
}

func (v *fakeView) Render(st render.State) error {
	v.states = append(v.states, st)
	return nil
}

func (v *fakeView) RenderFailure(err error) error {
	v.failures = append(v.failures, err)
	return nil
}

func (v *fakeView) last(t *testing.T) render.State {
	t.Helper()
	require.NotEmpty(t, v.states)
	return v.states[len(v.states)-1]
}

type countingMonitor struct {
	noopMonitor
	dropped int
}

func (m *countingMonitor) FetchDropped(string) {
	m.dropped++
}

type fixture struct {
	session *Session
	fetcher *fakeFetcher
	view    *fakeView
	store   storage.SnippetRepository
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	f := &fixture{fetcher: &fakeFetcher{}, view: &fakeView{}, store: repo}
	f.session, err = NewSession(repo, f.fetcher, f.view, opts...)
	require.NoError(t, err)
	return f
}

// complete delivers resp for the most recent fetch and applies it.
func (f *fixture) complete(t *testing.T, resp *core.Response, err error) error {
	t.Helper()
	f.fetcher.last(t).done(resp, err)
	return f.session.Wait(context.Background())
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	n, err := f.store.Count(context.Background())
	require.NoError(t, err)
	return n
}

func params(t *testing.T, rawURL string) (string, url.Values) {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Path, u.Query()
}

func ptr[T any](v T) *T {
	return &v
}

func snippets(typ core.SnippetType, ids ...string) []*core.Snippet {
	out := make([]*core.Snippet, 0, len(ids))
	for i, id := range ids {
		out = append(out, &core.Snippet{
			ID:    core.ID(id),
			Type:  typ,
			URL:   "http://example.test/" + id,
			Title: "title " + id,
			Rank:  core.Number(len(ids) - i),
		})
	}
	return out
}

func response(q string, snips []*core.Snippet) *core.Response {
	engines := core.Engines{"google"}
	return &core.Response{
		Lang:      ptr("en"),
		Query:     ptr(q),
		Expansion: ptr(core.Number(1)),
		Engines:   &engines,
		Snippets:  snips,
	}
}

func idRange(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return ids
}

func TestNewSession(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	_, err = NewSession(nil, &fakeFetcher{}, &fakeView{})
	assert.ErrorIs(t, err, ErrStoreRequired)
	_, err = NewSession(repo, nil, &fakeView{})
	assert.ErrorIs(t, err, ErrFetcherRequired)
	_, err = NewSession(repo, &fakeFetcher{}, nil)
	assert.ErrorIs(t, err, ErrViewRequired)

	_, err = NewSession(repo, &fakeFetcher{}, &fakeView{}, WithConfig(NewConfig(WithClusters(0))))
	assert.Error(t, err)

	s, err := NewSession(repo, &fakeFetcher{}, &fakeView{}, WithLogger(nil), WithMonitor(nil))
	require.NoError(t, err)
	assert.Equal(t, core.VerticalText, s.Active())
	assert.Equal(t, "en", s.Query().Lang)
	assert.False(t, s.Pending())
	assert.Equal(t, 60, s.Vertical(core.VerticalImage).PerPage)
}

func TestStartURL(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(context.Background(), "hello world"))

	call := f.fetcher.last(t)
	assert.True(t, strings.HasPrefix(call.token, tokenPrefix))
	assert.Len(t, call.token, len(tokenPrefix)+32)
	assert.True(t, strings.HasPrefix(call.url, "http://localhost:8080/seeks/search?"))
	assert.True(t, strings.HasSuffix(call.url, "&callback="+call.token))

	path, q := params(t, call.url)
	assert.Equal(t, "/seeks/search", path)
	assert.Equal(t, "hello world", q.Get("q"))
	assert.Equal(t, "1", q.Get("expansion"))
	assert.Equal(t, "expand", q.Get("action"))
	assert.Equal(t, "10", q.Get("rpp"))
	assert.Equal(t, "off", q.Get("content_analysis"))
	assert.Equal(t, "on", q.Get("prs"))
	assert.Equal(t, "json", q.Get("output"))
	assert.False(t, q.Has("lang"))
	assert.True(t, f.session.Pending())
}

func TestTokensAreUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "a"))
	require.NoError(t, f.session.Expand(ctx))
	assert.NotEqual(t, f.fetcher.calls[0].token, f.fetcher.calls[1].token)
}

func TestApplyResponse(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(context.Background(), ":fr:bonjour"))

	resp := response(":fr:bonjour", snippets(core.SnippetTypeText, "a", "b", "c"))
	resp.Lang = ptr("fr")
	resp.Expansion = ptr(core.Number(2))
	resp.Suggestion = ptr("bonjours")
	require.NoError(t, f.complete(t, resp, nil))

	assert.False(t, f.session.Pending())
	assert.Equal(t, 3, f.count(t))
	assert.Equal(t, "fr", f.session.Query().Lang)
	assert.Equal(t, "bonjour", f.session.Query().Query)

	vs := f.session.Vertical(core.VerticalText)
	assert.Equal(t, 2, vs.Expansion)
	assert.Equal(t, 3, vs.NextExpansion)
	assert.Equal(t, "bonjours", vs.Suggestion)
	assert.Equal(t, core.Engines{"google"}, vs.Engines)

	st := f.view.last(t)
	assert.Equal(t, core.VerticalText, st.Vertical)
	assert.Len(t, st.Page.Items, 3)
	assert.Equal(t, 1, st.Page.Number)
	assert.Equal(t, 2, st.Expansion)
	assert.Equal(t, "bonjours", st.Suggestion)
}

func TestApplySkipsInvalidSnippets(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(context.Background(), "q"))

	snips := snippets(core.SnippetTypeText, "a")
	snips = append(snips, &core.Snippet{Title: "no identity"}, nil, &core.Snippet{URL: "http://example.test/derived"})
	require.NoError(t, f.complete(t, response("q", snips), nil))
	assert.Equal(t, 2, f.count(t))
}

func TestUpsertIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "q"))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, "a", "b")), nil))

	require.NoError(t, f.session.Expand(ctx))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, "b", "c")), nil))
	assert.Equal(t, 3, f.count(t))

	require.NoError(t, f.session.Expand(ctx))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, "a", "b", "c")), nil))
	assert.Equal(t, 3, f.count(t))
}

func TestStaleCompletionIsDropped(t *testing.T) {
	monitor := &countingMonitor{}
	f := newFixture(t, WithMonitor(monitor))
	ctx := context.Background()

	require.NoError(t, f.session.Start(ctx, "q"))
	require.NoError(t, f.session.Expand(ctx))
	require.Len(t, f.fetcher.calls, 2)

	// The older fetch answers last.
	f.fetcher.calls[1].done(response("q", snippets(core.SnippetTypeText, "new")), nil)
	f.fetcher.calls[0].done(response("q", snippets(core.SnippetTypeText, "old")), nil)
	require.NoError(t, f.session.Wait(ctx))
	require.NoError(t, f.session.ApplyPending(ctx))

	assert.Equal(t, 1, f.count(t))
	_, err := f.store.Get(ctx, "old")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, 1, monitor.dropped)
}

func TestFailedFetchLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "q"))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, "a", "b")), nil))
	before := f.session.Vertical(core.VerticalText)
	renders := len(f.view.states)

	require.NoError(t, f.session.Expand(ctx))
	boom := errors.New("connection refused")
	err := f.complete(t, nil, boom)
	assert.ErrorIs(t, err, boom)

	assert.Len(t, f.view.failures, 1)
	assert.Len(t, f.view.states, renders)
	assert.Equal(t, 2, f.count(t))
	assert.Equal(t, before, f.session.Vertical(core.VerticalText))
	assert.False(t, f.session.Pending())
}

func TestInvalidPayloadRendersFailure(t *testing.T) {
	tests := []struct {
		name    string
		resp    *core.Response
		wantErr error
	}{
		{name: "missing query", resp: &core.Response{Snippets: snippets(core.SnippetTypeText, "a")}, wantErr: core.ErrMissingQuery},
		{name: "missing results", resp: &core.Response{Query: ptr("q")}, wantErr: core.ErrMissingResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.session.Start(context.Background(), "q"))
			err := f.complete(t, tt.resp, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, f.view.failures, 1)
			assert.Empty(t, f.view.states)
			assert.Equal(t, 0, f.count(t))
		})
	}
}

func TestFetchIssueError(t *testing.T) {
	f := newFixture(t)
	f.fetcher.err = errors.New("pool closed")
	err := f.session.Start(context.Background(), "q")
	assert.Error(t, err)
	assert.False(t, f.session.Pending())
	assert.Len(t, f.view.failures, 1)
}

func TestWaitWithNothingPending(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.session.Wait(context.Background()), ErrNothingPending)
}

func TestWaitHonorsContext(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Start(context.Background(), "q"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.session.Wait(ctx), context.Canceled)
}

func TestSwitchVerticalFetchesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "q"))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, "a")), nil))
	require.Len(t, f.fetcher.calls, 1)

	fetched, err := f.session.SwitchVertical(ctx, core.VerticalImage)
	require.NoError(t, err)
	assert.True(t, fetched)
	require.Len(t, f.fetcher.calls, 2)

	path, q := params(t, f.fetcher.last(t).url)
	assert.Equal(t, "/seeks/search_img", path)
	assert.Equal(t, "60", q.Get("rpp"))
	assert.Equal(t, "dyn", q.Get("ui"))
	assert.False(t, q.Has("engines"))

	imgResp := response("q", snippets(core.SnippetTypeImage, "i1", "i2"))
	imgResp.Engines = &core.Engines{"flickr"}
	require.NoError(t, f.complete(t, imgResp, nil))
	st := f.view.last(t)
	assert.Equal(t, core.VerticalImage, st.Vertical)
	assert.Len(t, st.Page.Items, 2)

	fetched, err = f.session.SwitchVertical(ctx, core.VerticalText)
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Len(t, f.view.last(t).Page.Items, 1)

	fetched, err = f.session.SwitchVertical(ctx, core.VerticalImage)
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Len(t, f.fetcher.calls, 2)
}

func TestSwitchVerticalUsesFixedEngines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "q"))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, "a")), nil))

	_, err := f.session.SwitchVertical(ctx, core.VerticalVideo)
	require.NoError(t, err)
	call := f.fetcher.last(t)
	assert.Contains(t, call.url, "&engines=youtube,dailymotion&callback=")

	resp := response("q", snippets(core.SnippetTypeVideo, "v1"))
	resp.Engines = nil
	require.NoError(t, f.complete(t, resp, nil))
	assert.Equal(t, core.Engines{"youtube", "dailymotion"}, f.session.Vertical(core.VerticalVideo).Engines)

	_, err = f.session.SwitchVertical(ctx, core.VerticalSocial)
	require.NoError(t, err)
	assert.Contains(t, f.fetcher.last(t).url, "&engines=twitter,identica&callback=")

	_, err = f.session.SwitchVertical(ctx, core.Vertical(42))
	assert.ErrorIs(t, err, core.ErrInvalidVertical)
}

func TestSubmitUnchangedQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "hello"))
	require.NoError(t, f.complete(t, response("hello", snippets(core.SnippetTypeText, "a")), nil))

	fetched, err := f.session.Submit(ctx, "hello", "")
	require.NoError(t, err)
	assert.False(t, fetched)

	fetched, err = f.session.Submit(ctx, "hello", "en")
	require.NoError(t, err)
	assert.False(t, fetched)

	fetched, err = f.session.Submit(ctx, ":en:hello", "fr")
	require.NoError(t, err)
	assert.False(t, fetched)

	assert.Len(t, f.fetcher.calls, 1)
	assert.Equal(t, 1, f.count(t))
}

func TestSubmitChangedQueryResets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "hello"))
	require.NoError(t, f.complete(t, response("hello", snippets(core.SnippetTypeText, idRange("t", 25)...)), nil))
	_, err := f.session.NextPage(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, f.session.Vertical(core.VerticalText).Page)

	fetched, err := f.session.Submit(ctx, "world", "")
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Equal(t, 0, f.count(t))

	vs := f.session.Vertical(core.VerticalText)
	assert.Equal(t, 1, vs.Page)
	assert.Empty(t, vs.Engines)
	assert.Equal(t, 1, vs.Expansion)
	assert.Equal(t, "hello", f.session.Query().Query)

	path, q := params(t, f.fetcher.last(t).url)
	assert.Equal(t, "/seeks/search", path)
	assert.Equal(t, "world", q.Get("q"))
	assert.Equal(t, "en", q.Get("lang"))
	assert.Equal(t, "on", q.Get("prs"))
	assert.True(t, q.Has("engines"))

	require.NoError(t, f.complete(t, response("world", snippets(core.SnippetTypeText, "w")), nil))
	assert.Equal(t, "world", f.session.Query().Query)
	assert.Equal(t, "world", f.session.Query().Raw)
}

func TestSubmitRetriesAfterFailedFetch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "old"))
	require.NoError(t, f.complete(t, response("old", snippets(core.SnippetTypeText, "a")), nil))

	fetched, err := f.session.Submit(ctx, "new", "")
	require.NoError(t, err)
	require.True(t, fetched)
	boom := errors.New("backend down")
	assert.ErrorIs(t, f.complete(t, nil, boom), boom)
	assert.Equal(t, "old", f.session.Query().Query)

	fetched, err = f.session.Submit(ctx, "new", "")
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Len(t, f.fetcher.calls, 3)
	_, q := params(t, f.fetcher.last(t).url)
	assert.Equal(t, "new", q.Get("q"))

	require.NoError(t, f.complete(t, response("new", snippets(core.SnippetTypeText, "b")), nil))
	assert.Equal(t, "new", f.session.Query().Query)

	fetched, err = f.session.Submit(ctx, "new", "")
	require.NoError(t, err)
	assert.False(t, fetched)
}

func TestSubmitRetriesAfterIssueError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "old"))
	require.NoError(t, f.complete(t, response("old", snippets(core.SnippetTypeText, "a")), nil))

	f.fetcher.err = errors.New("pool closed")
	_, err := f.session.Submit(ctx, "new", "")
	require.Error(t, err)
	assert.Equal(t, "old", f.session.Query().Query)

	f.fetcher.err = nil
	fetched, err := f.session.Submit(ctx, "new", "")
	require.NoError(t, err)
	assert.True(t, fetched)
}

func TestControlsUseQueryInFlight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "first"))
	require.NoError(t, f.session.Expand(ctx))

	_, q := params(t, f.fetcher.last(t).url)
	assert.Equal(t, "first", q.Get("q"))

	// The superseding fetch still commits the query it was issued for.
	require.NoError(t, f.complete(t, response("first", snippets(core.SnippetTypeText, "a")), nil))
	assert.Equal(t, "first", f.session.Query().Raw)
}

func TestSubmitLanguageSelection(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		langInput string
		wantLang  string
		wantQuery string
	}{
		{name: "directive wins", raw: ":de:hallo", langInput: "fr", wantLang: "de", wantQuery: "hallo"},
		{name: "input differs", raw: "hello", langInput: "fr", wantLang: "fr", wantQuery: "hello"},
		{name: "keep current", raw: "other", langInput: "", wantLang: "en", wantQuery: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			require.NoError(t, f.session.Start(ctx, "hello"))
			require.NoError(t, f.complete(t, response("hello", snippets(core.SnippetTypeText, "a")), nil))

			fetched, err := f.session.Submit(ctx, tt.raw, tt.langInput)
			require.NoError(t, err)
			assert.True(t, fetched)
			_, q := params(t, f.fetcher.last(t).url)
			assert.Equal(t, tt.wantLang, q.Get("lang"))
			assert.Equal(t, tt.raw, q.Get("q"))

			resp := response(tt.raw, snippets(core.SnippetTypeText, "b"))
			resp.Lang = nil
			require.NoError(t, f.complete(t, resp, nil))
			assert.Equal(t, tt.wantLang, f.session.Query().Lang)
			assert.Equal(t, tt.wantQuery, f.session.Query().Query)
		})
	}
}

func TestExpandURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "q"))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, "a")), nil))

	require.NoError(t, f.session.Expand(ctx))
	call := f.fetcher.last(t)
	_, q := params(t, call.url)
	assert.Equal(t, "2", q.Get("expansion"))
	assert.Equal(t, "expand", q.Get("action"))
	assert.Equal(t, "google", q.Get("engines"))
	assert.Equal(t, call.token, q.Get("callback"))
}

func TestCluster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "q"))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, "a", "b", "c")), nil))

	ok, err := f.session.Cluster(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	_, q := params(t, f.fetcher.last(t).url)
	assert.Equal(t, "clusterize", q.Get("action"))
	assert.Equal(t, "10", q.Get("clusters"))
	assert.False(t, q.Has("rpp"))
	assert.False(t, q.Has("engines"))

	resp := &core.Response{
		Query: ptr("q"),
		Clusters: []core.Cluster{
			{Label: "first", Snippets: snippets(core.SnippetTypeText, "a", "b")},
			{Label: "second", Snippets: snippets(core.SnippetTypeText, "c", "d")},
		},
	}
	require.NoError(t, f.complete(t, resp, nil))
	assert.Equal(t, 2, f.session.Clustered())
	assert.Equal(t, 4, f.count(t))

	st := f.view.last(t)
	require.True(t, st.View.Clustered())
	require.Len(t, st.View.Buckets, 2)
	assert.Equal(t, "first", st.View.Buckets[0].Label)
	assert.Equal(t, 2, st.View.Buckets[1].Len())

	// Any flat-mode control leaves clusterize mode.
	_, err = f.session.SwitchVertical(ctx, core.VerticalText)
	require.NoError(t, err)
	assert.Equal(t, 0, f.session.Clustered())
	assert.False(t, f.view.last(t).View.Clustered())
}

func TestClusterImageIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.session.SwitchVertical(ctx, core.VerticalImage)
	require.NoError(t, err)
	calls := len(f.fetcher.calls)

	ok, err := f.session.Cluster(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, f.fetcher.calls, calls)
}

func TestPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "q"))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, idRange("s", 25)...)), nil))

	st := f.view.last(t)
	assert.Equal(t, 2, st.Page.MaxPage)
	assert.Len(t, st.Page.Items, 10)

	ok, err := f.session.PrevPage(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.session.NextPage(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, f.view.last(t).Page.Number)
	assert.Equal(t, 10, f.view.last(t).Page.Offset)

	ok, err = f.session.NextPage(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, f.session.Vertical(core.VerticalText).Page)

	ok, err = f.session.PrevPage(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, f.session.Vertical(core.VerticalText).Page)
}

func TestTogglePersonalization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx, "q"))
	require.NoError(t, f.complete(t, response("q", snippets(core.SnippetTypeText, "a")), nil))

	require.NoError(t, f.session.TogglePersonalization(ctx))
	_, q := params(t, f.fetcher.last(t).url)
	assert.Equal(t, "off", q.Get("prs"))
	assert.Equal(t, core.PersonalizationOn, f.session.Vertical(core.VerticalText).Personalization)

	resp := response("q", snippets(core.SnippetTypeText, "a"))
	resp.Pers = ptr(core.PersonalizationOff)
	require.NoError(t, f.complete(t, resp, nil))
	assert.Equal(t, core.PersonalizationOff, f.session.Vertical(core.VerticalText).Personalization)
	assert.Equal(t, core.PersonalizationOff, f.view.last(t).Personalization)
}

func TestTypesURL(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Types(context.Background()))
	_, q := params(t, f.fetcher.last(t).url)
	assert.Equal(t, "types", q.Get("action"))
	assert.Equal(t, "en", q.Get("lang"))
	assert.False(t, q.Has("rpp"))
}

func TestRefreshReplacesPlaceholder(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Refresh(context.Background(), "http://backend.test/search?q=x&callback="+CallbackPlaceholder))
	call := f.fetcher.last(t)
	assert.Equal(t, "http://backend.test/search?q=x&callback="+call.token, call.url)
}
