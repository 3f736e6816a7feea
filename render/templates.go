package render

import "html/template"

// snippetTemplates holds one named template per vertical plus the shared
// pieces they invoke. Each vertical template renders a single SnippetView.
const snippetTemplates = `
{{define "head"}}{{if .Personalized}}<h3 class="personalized_result personalized" title="personalized result">{{else}}<h3>{{end}}{{end}}

{{define "engines"}}{{range .Engines}}<span class="search_engine search_engine_{{.Name}}" title="{{.Name}}"><a href="{{.Href}}"></a></span>{{end}}{{end}}

{{define "text"}}<li class="search_snippet">{{template "head" .}}<a href="{{.URL}}">{{.Title}}</a>{{template "engines" .}}</h3><div>{{.Summary}}</div><div><cite>{{.Cite}}</cite><a class="search_cache" href="{{.Cached}}">Cached</a><a class="search_cache" href="{{.Archive}}">Archive</a><a class="search_cache" href="{{.SimilarHref}}">Similar</a></div></li>{{end}}

{{define "image"}}<li class="search_snippet search_snippet_img"><h3><a href="{{.URL}}"><img src="{{.Cached}}"></a><div>{{.Title}}{{template "engines" .}}</div></h3><cite>{{.Cite}}</cite><br><a class="search_cache" href="{{.Cached}}">Cached</a></li>{{end}}

{{define "video"}}<li class="search_snippet search_snippet_vid"><a href="{{.URL}}"><img class="video_profile" src="{{.Cached}}"></a>{{template "head" .}}<a href="{{.URL}}">{{.Title}}</a>{{template "engines" .}}</h3><div><cite>{{.Date}}</cite></div></li>{{end}}

{{define "social"}}<li class="search_snippet"><a href="{{.Cite}}"><img class="tweet_profile" src="{{.Cached}}"></a><h3><a href="{{.URL}}">{{.Title}}</a></h3><div><cite>{{.Cite}}</cite><span class="date"> ({{.Date}})</span><a class="search_cache" href="{{.SimilarHref}}">Similar</a></div></li>{{end}}
`

// layoutTemplates wrap rendered snippets into the flat list or the two
// cluster columns.
const layoutTemplates = `
{{define "flat"}}<div id="search_results"><ol>{{range .}}{{.}}{{end}}</ol></div>{{end}}

{{define "cluster"}}<div class="cluster"><h2>{{.Label}} <span class="cluster_size">({{.Size}})</span></h2><br><ol>{{range .Items}}{{.}}{{end}}</ol><div class="clear"></div></div>{{end}}

{{define "clusters"}}<div id="search_results" class="yui3-g clustered"><div class="yui3-u-1-2 first">{{range .Left}}{{template "cluster" .}}{{end}}</div><div class="yui3-u-1-2">{{range .Right}}{{template "cluster" .}}{{end}}</div></div>{{end}}

{{define "star"}}<img src="{{.}}" style="border: 0;"/>{{end}}
`

func parseTemplates() (*template.Template, error) {
	t, err := template.New("snippets").Parse(snippetTemplates)
	if err != nil {
		return nil, err
	}
	return t.Parse(layoutTemplates)
}
