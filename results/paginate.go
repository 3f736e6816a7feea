package results

import "github.com/poiesic/seekr/core"

// Page is one window of a flat, ordered list.
type Page struct {
	// Number is the 1-based page number.
	Number int
	// MaxPage is the last page reachable through the next control.
	MaxPage int
	// Offset is the 0-based index of the first item in the window.
	Offset int
	// Items is the visible window.
	Items []*core.Snippet
}

// HasPrev reports whether the previous-page control is enabled.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether the next-page control is enabled.
func (p Page) HasNext() bool {
	return p.Number < p.MaxPage
}

// MaxPage returns count / perPage with integer floor, never less than 1.
// A trailing partial page is not counted.
func MaxPage(count, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	return max(1, count/perPage)
}

// Window returns the items with 1-based rank k where
// (page-1)*perPage < k <= page*perPage. The caller is responsible for
// passing a page >= 1.
func Window(list []*core.Snippet, perPage, page int) []*core.Snippet {
	if perPage <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(list) {
		return []*core.Snippet{}
	}
	end := min(start+perPage, len(list))
	return list[start:end]
}

// Paginate windows list for page and computes the control state.
func Paginate(list []*core.Snippet, perPage, page int) Page {
	return Page{
		Number:  page,
		MaxPage: MaxPage(len(list), perPage),
		Offset:  max(0, (page-1)*perPage),
		Items:   Window(list, perPage, page),
	}
}
