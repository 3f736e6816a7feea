package session

import (
	"net/url"
	"strconv"

	"github.com/poiesic/seekr/core"
)

// CallbackPlaceholder is replaced by the correlation token when a fetch is
// issued.
const CallbackPlaceholder = "{callback}"

const (
	actionExpand     = "expand"
	actionClusterize = "clusterize"
	actionTypes      = "types"
)

// requestURL describes one backend fetch before the token is minted.
type requestURL struct {
	path    string
	params  url.Values
	engines core.Engines
	// withEngines appends the engines parameter even when the set is empty.
	withEngines bool
}

func newRequestURL(path string) *requestURL {
	return &requestURL{path: path, params: url.Values{}}
}

func (r *requestURL) set(key, value string) *requestURL {
	r.params.Set(key, value)
	return r
}

func (r *requestURL) setInt(key string, value int) *requestURL {
	return r.set(key, strconv.Itoa(value))
}

// dyn marks the request as coming from the dynamic front end.
func (r *requestURL) dyn() *requestURL {
	return r.set("ui", "dyn").set("output", "json")
}

func (r *requestURL) withEngineSet(engines core.Engines) *requestURL {
	r.engines = engines
	r.withEngines = true
	return r
}

// String builds the URL. Engine names are appended unescaped, comma joined,
// and the callback placeholder always comes last.
func (r *requestURL) String(baseURL string) string {
	u := baseURL + r.path + "?" + r.params.Encode()
	if r.withEngines {
		u += "&engines=" + r.engines.String()
	}
	return u + "&callback=" + CallbackPlaceholder
}

// searchPath returns the endpoint path used to expand v.
func searchPath(v core.Vertical) string {
	if v == core.VerticalImage {
		return "/search_img"
	}
	return "/search"
}
