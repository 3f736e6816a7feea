package results

import (
	"cmp"
	"slices"

	"github.com/poiesic/seekr/core"
)

// Options selects what Aggregate produces.
type Options struct {
	// Vertical is the active vertical.
	Vertical core.Vertical
	// Personalization selects the seeks_score ordering when on.
	Personalization core.Personalization
	// ClusterCount is the number of cluster buckets; zero means flat mode.
	ClusterCount int
	// Labels names each cluster bucket by index.
	Labels []string
}

// Bucket is one cluster of snippets.
type Bucket struct {
	Index    int
	Label    string
	Snippets []*core.Snippet
}

// Len returns the number of snippets in the bucket.
func (b Bucket) Len() int {
	return len(b.Snippets)
}

// View is the aggregated projection of the Result Store for one vertical.
type View struct {
	// Flat is the ordered list in flat mode; nil when clustered.
	Flat []*core.Snippet
	// Buckets holds one bucket per cluster index when clustered.
	Buckets []Bucket
	// Total is the number of snippets that matched the vertical.
	Total int
}

// Clustered reports whether the view is partitioned into buckets.
func (v *View) Clustered() bool {
	return v.Buckets != nil
}

// Aggregate filters snippets to the active vertical and orders or partitions
// them. The input must be in Result Store insertion order and is not
// modified.
func Aggregate(snippets []*core.Snippet, opts Options) *View {
	filtered := Filter(snippets, opts.Vertical)
	view := &View{Total: len(filtered)}

	if opts.ClusterCount > 0 {
		view.Buckets = Partition(filtered, opts.ClusterCount, opts.Labels)
		return view
	}

	Sort(filtered, opts.Personalization)
	view.Flat = filtered
	return view
}

// Filter returns the snippets whose type belongs to vertical, in input order.
func Filter(snippets []*core.Snippet, vertical core.Vertical) []*core.Snippet {
	out := make([]*core.Snippet, 0, len(snippets))
	for _, s := range snippets {
		if s != nil && vertical.Matches(s.Type) {
			out = append(out, s)
		}
	}
	return out
}

// Sort orders snippets in place. The sort is stable so snippets equal on
// every key keep their relative order.
func Sort(snippets []*core.Snippet, pers core.Personalization) {
	slices.SortStableFunc(snippets, func(a, b *core.Snippet) int {
		return Compare(a, b, pers)
	})
}

// Compare orders two snippets: negative when a sorts before b.
func Compare(a, b *core.Snippet, pers core.Personalization) int {
	if pers == core.PersonalizationOn {
		if c := cmp.Compare(b.SeeksScore, a.SeeksScore); c != 0 {
			return c
		}
	}
	return compareMeta(a, b)
}

// compareMeta orders by seeks_meta descending, then rank descending.
func compareMeta(a, b *core.Snippet) int {
	if c := cmp.Compare(b.SeeksMeta, a.SeeksMeta); c != 0 {
		return c
	}
	return cmp.Compare(b.Rank, a.Rank)
}

// Partition splits snippets into count buckets by their cluster index.
// Snippets without a cluster index, or with one outside [0, count), are
// dropped. Within a bucket snippets keep their input order.
func Partition(snippets []*core.Snippet, count int, labels []string) []Bucket {
	buckets := make([]Bucket, count)
	for i := range buckets {
		buckets[i].Index = i
		if i < len(labels) {
			buckets[i].Label = labels[i]
		}
	}
	for _, s := range snippets {
		if !s.InCluster(count) {
			continue
		}
		buckets[*s.Cluster].Snippets = append(buckets[*s.Cluster].Snippets, s)
	}
	return buckets
}

// Columns lays buckets out into two columns by index parity: even indexes go
// left, odd indexes go right. Index order is kept within each column.
func Columns(buckets []Bucket) (left, right []Bucket) {
	for _, b := range buckets {
		if b.Index%2 == 0 {
			left = append(left, b)
		} else {
			right = append(right, b)
		}
	}
	return left, right
}
