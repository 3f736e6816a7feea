package render

import (
	"fmt"
	"io"
)

// DocumentView renders session state into a Document.
type DocumentView struct {
	renderer *Renderer
	doc      Document
}

// NewDocumentView binds r to doc.
func NewDocumentView(r *Renderer, doc Document) (*DocumentView, error) {
	if r == nil {
		return nil, ErrRendererRequired
	}
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	return &DocumentView{renderer: r, doc: doc}, nil
}

// Render writes st into the document.
func (v *DocumentView) Render(st State) error {
	return v.renderer.Render(v.doc, st)
}

// RenderFailure shows the failure placeholder. The cause is not displayed.
func (v *DocumentView) RenderFailure(error) error {
	return v.renderer.RenderFailure(v.doc)
}

// Document returns the bound document.
func (v *DocumentView) Document() Document {
	return v.doc
}

// TerminalView writes terminal-formatted session state to a writer.
type TerminalView struct {
	term *Terminal
	out  io.Writer
}

// NewTerminalView binds t to out.
func NewTerminalView(t *Terminal, out io.Writer) *TerminalView {
	return &TerminalView{term: t, out: out}
}

// Render formats st and writes it out.
func (v *TerminalView) Render(st State) error {
	text, err := v.term.Render(st)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTemplateFailed, err)
	}
	_, err = io.WriteString(v.out, text)
	return err
}

// RenderFailure writes the failure notice.
func (v *TerminalView) RenderFailure(cause error) error {
	text, err := v.term.RenderFailure(cause)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTemplateFailed, err)
	}
	_, err = io.WriteString(v.out, text)
	return err
}
