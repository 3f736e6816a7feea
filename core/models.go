package core

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ID is the opaque identity of a snippet, stable across fetches.
type ID string

// IDFromURL derives a deterministic ID from a result URL using BLAKE2b hashing.
// It is used for snippets whose payload carries no id of its own.
func IDFromURL(url string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(url))
	return ID("u" + hex.EncodeToString(h.Sum(nil)))
}

// SnippetType is the content type reported by the backend for a snippet.
type SnippetType string

const (
	// SnippetTypeText is a regular web result. Any type that is not one of the
	// media types below is rendered as text.
	SnippetTypeText SnippetType = "text"
	// SnippetTypeImage is an image result.
	SnippetTypeImage SnippetType = "image"
	// SnippetTypeVideo is a video thumbnail result.
	SnippetTypeVideo SnippetType = "video_thumb"
	// SnippetTypeTweet is a microblog post.
	SnippetTypeTweet SnippetType = "tweet"
)

// Vertical is one of the four result categories, each with independent
// paging, engine and expansion state.
type Vertical int

const (
	// VerticalText shows every snippet that is not an image, video or tweet.
	VerticalText Vertical = iota
	// VerticalImage shows image snippets.
	VerticalImage
	// VerticalVideo shows video thumbnails.
	VerticalVideo
	// VerticalSocial shows tweets.
	VerticalSocial
)

// Verticals lists every vertical in tab order.
var Verticals = []Vertical{VerticalText, VerticalImage, VerticalVideo, VerticalSocial}

var verticalNames = map[Vertical]string{
	VerticalText:   "text",
	VerticalImage:  "image",
	VerticalVideo:  "video",
	VerticalSocial: "social",
}

// String returns the lower-case vertical name.
func (v Vertical) String() string {
	if name, ok := verticalNames[v]; ok {
		return name
	}
	return "unknown"
}

// ParseVertical maps a vertical name back to its value.
func ParseVertical(name string) (Vertical, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for v, n := range verticalNames {
		if n == name {
			return v, nil
		}
	}
	return VerticalText, ErrInvalidVertical
}

// Matches reports whether a snippet of type t belongs to the vertical.
// The text vertical excludes the three media types; the other verticals
// match exactly their own type.
func (v Vertical) Matches(t SnippetType) bool {
	switch v {
	case VerticalImage:
		return t == SnippetTypeImage
	case VerticalVideo:
		return t == SnippetTypeVideo
	case VerticalSocial:
		return t == SnippetTypeTweet
	default:
		return t != SnippetTypeImage && t != SnippetTypeVideo && t != SnippetTypeTweet
	}
}

// SupportsClustering reports whether the backend can clusterize results for
// this vertical. Images are never clustered.
func (v Vertical) SupportsClustering() bool {
	return v != VerticalImage
}

// Personalization is the on/off state of result personalization.
type Personalization string

const (
	PersonalizationOn  Personalization = "on"
	PersonalizationOff Personalization = "off"
)

// Toggle returns the opposite state. Anything other than "off" toggles to off.
func (p Personalization) Toggle() Personalization {
	if p == PersonalizationOff {
		return PersonalizationOn
	}
	return PersonalizationOff
}

// Snippet is one search result unit.
type Snippet struct {
	ID           ID          `json:"id"`
	Type         SnippetType `json:"type"`
	URL          string      `json:"url"`
	Title        string      `json:"title"`
	Summary      string      `json:"summary"`
	Cite         string      `json:"cite"`
	Cached       string      `json:"cached"`
	Archive      string      `json:"archive"`
	Date         string      `json:"date,omitempty"`
	Engines      Engines     `json:"engines"`
	SeeksScore   Number      `json:"seeks_score"`
	SeeksMeta    Number      `json:"seeks_meta"`
	Rank         Number      `json:"rank"`
	Personalized Flag        `json:"personalized"`
	Words        []string    `json:"words,omitempty"`

	// Cluster is the index into the cluster list when the snippet arrived in
	// a clusterized response; nil otherwise.
	Cluster *int `json:"cluster,omitempty"`
}

// InCluster reports whether the snippet carries a cluster index below n.
func (s *Snippet) InCluster(n int) bool {
	return s.Cluster != nil && *s.Cluster >= 0 && *s.Cluster < n
}

// Cluster is one labeled group of a clusterized response.
type Cluster struct {
	Label    string     `json:"label"`
	Snippets []*Snippet `json:"snippets"`
}

// Response is the JSON payload returned by the backend for a result fetch.
// Pointer fields distinguish absent values from zero values.
type Response struct {
	Lang       *string          `json:"lang"`
	Query      *string          `json:"query"`
	Expansion  *Number          `json:"expansion"`
	Suggestion *string          `json:"suggestion"`
	Pers       *Personalization `json:"pers"`
	Engines    *Engines         `json:"engines"`
	Snippets   []*Snippet       `json:"snippets"`
	Clusters   []Cluster        `json:"clusters"`
}

// Clustered reports whether the payload carries a clusters field.
func (r *Response) Clustered() bool {
	return r.Clusters != nil
}
