package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/poiesic/seekr/core"
)

// Terminal renders State as markdown for a terminal.
type Terminal struct {
	renderer  *glamour.TermRenderer
	sanitizer *sanitizer
}

// TerminalOption configures a Terminal.
type TerminalOption func(*terminalOptions)

type terminalOptions struct {
	width int
	style string
}

// WithWidth sets the word-wrap width. Default is 80.
func WithWidth(width int) TerminalOption {
	return func(o *terminalOptions) {
		if width > 0 {
			o.width = width
		}
	}
}

// WithStyle selects a named glamour style such as "dark" or "notty".
// Default picks a style from the terminal background.
func WithStyle(style string) TerminalOption {
	return func(o *terminalOptions) {
		o.style = style
	}
}

// NewTerminal creates a terminal renderer.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	options := &terminalOptions{width: 80}
	for _, opt := range opts {
		opt(options)
	}

	styleOpt := glamour.WithAutoStyle()
	if options.style != "" {
		styleOpt = glamour.WithStandardStyle(options.style)
	}

	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(options.width),
	)
	if err != nil {
		return nil, err
	}

	return &Terminal{
		renderer:  renderer,
		sanitizer: newSanitizer(),
	}, nil
}

// Render returns st formatted for the terminal.
func (t *Terminal) Render(st State) (string, error) {
	return t.renderer.Render(t.Markdown(st))
}

// RenderFailure returns the failure notice formatted for the terminal.
func (t *Terminal) RenderFailure(err error) (string, error) {
	return t.renderer.Render(fmt.Sprintf("> search failed: %s\n", escapeMarkdown(err.Error())))
}

// Markdown returns the markdown source Render formats.
func (t *Terminal) Markdown(st State) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(st.Query.Query))
	fmt.Fprintf(&sb, "*%s* · lang `%s` · expansion %d · personalization %s\n\n",
		st.Vertical, st.Query.Lang, st.Expansion, st.Personalization)

	if st.Suggestion != "" {
		fmt.Fprintf(&sb, "Did you mean **%s**?\n\n", escapeMarkdown(st.Suggestion))
	}

	view := st.View
	switch {
	case view != nil && view.Clustered():
		for _, b := range view.Buckets {
			if b.Len() == 0 {
				continue
			}
			fmt.Fprintf(&sb, "## %s (%d)\n\n", escapeMarkdown(b.Label), b.Len())
			for i, s := range b.Snippets {
				t.writeSnippet(&sb, i+1, s)
			}
		}
	case len(st.Page.Items) == 0:
		sb.WriteString("No results.\n\n")
	default:
		for i, s := range st.Page.Items {
			t.writeSnippet(&sb, st.Page.Offset+i+1, s)
		}
		fmt.Fprintf(&sb, "---\n\npage %d of %d\n", st.Page.Number, st.Page.MaxPage)
	}

	return sb.String()
}

func (t *Terminal) writeSnippet(sb *strings.Builder, n int, s *core.Snippet) {
	title := strings.TrimSpace(t.sanitizer.Text(s.Title))
	if title == "" {
		title = s.URL
	}
	fmt.Fprintf(sb, "%d. [%s](%s)", n, escapeMarkdown(title), s.URL)
	if s.Personalized {
		sb.WriteString(" ★")
	}
	sb.WriteString("\n")
	if summary := strings.TrimSpace(t.sanitizer.Text(s.Summary)); summary != "" {
		fmt.Fprintf(sb, "   %s\n", escapeMarkdown(summary))
	}
	if len(s.Engines) > 0 {
		fmt.Fprintf(sb, "   _%s_\n", s.Engines)
	}
	sb.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
