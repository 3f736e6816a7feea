package render

import "sync"

// Role names an element of the results page by what it shows.
type Role string

const (
	RoleResults        Role = "main"
	RolePageCurrent    Role = "search_page_current"
	RolePageCurrentTop Role = "search_page_current_top"
	RolePagePrev       Role = "search_page_prev"
	RolePageNext       Role = "search_page_next"
	RolePagePrevTop    Role = "search_page_prev_top"
	RolePageNextTop    Role = "search_page_next_top"
	RoleExpansion      Role = "expansion"
	RolePersFlag       Role = "tab-pers-flag"
	RoleLanguage       Role = "tab-language"
	RoleSuggestion     Role = "search_sugg"
)

// Document is the page the renderer writes into. Implementations bind each
// role to a concrete element.
type Document interface {
	// SetContent replaces the inner markup of the element.
	SetContent(role Role, markup string)
	// SetVisible shows or hides the element.
	SetVisible(role Role, visible bool)
	// SetClass replaces the class attribute of the element.
	SetClass(role Role, class string)
	// SetValue sets the value of an input element.
	SetValue(role Role, value string)
}

// Element is the state MemoryDocument keeps for one role.
type Element struct {
	Content string
	Visible *bool
	Class   string
	Value   string
}

// MemoryDocument is a Document kept in memory. It is safe for concurrent use.
type MemoryDocument struct {
	mu       sync.Mutex
	elements map[Role]Element
}

var _ Document = (*MemoryDocument)(nil)

// NewMemoryDocument creates an empty document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{elements: make(map[Role]Element)}
}

func (d *MemoryDocument) update(role Role, fn func(*Element)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := d.elements[role]
	fn(&el)
	d.elements[role] = el
}

func (d *MemoryDocument) SetContent(role Role, markup string) {
	d.update(role, func(el *Element) { el.Content = markup })
}

func (d *MemoryDocument) SetVisible(role Role, visible bool) {
	d.update(role, func(el *Element) { el.Visible = &visible })
}

func (d *MemoryDocument) SetClass(role Role, class string) {
	d.update(role, func(el *Element) { el.Class = class })
}

func (d *MemoryDocument) SetValue(role Role, value string) {
	d.update(role, func(el *Element) { el.Value = value })
}

// Content returns the markup written for role.
func (d *MemoryDocument) Content(role Role) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elements[role].Content
}

// Visible reports the visibility written for role. ok is false when the
// visibility was never set.
func (d *MemoryDocument) Visible(role Role) (visible, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.elements[role].Visible
	if v == nil {
		return false, false
	}
	return *v, true
}

// Class returns the class written for role.
func (d *MemoryDocument) Class(role Role) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elements[role].Class
}

// Value returns the input value written for role.
func (d *MemoryDocument) Value(role Role) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elements[role].Value
}

// Snapshot returns a copy of every element.
func (d *MemoryDocument) Snapshot() map[Role]Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[Role]Element, len(d.elements))
	for role, el := range d.elements {
		if el.Visible != nil {
			v := *el.Visible
			el.Visible = &v
		}
		out[role] = el
	}
	return out
}
