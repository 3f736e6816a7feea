package render

import "errors"

var (
	// ErrInvalidTheme is returned for an unknown theme name.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrDocumentRequired is returned when rendering without a document.
	ErrDocumentRequired = errors.New("document required")

	// ErrRendererRequired is returned when a view is built without a renderer.
	ErrRendererRequired = errors.New("renderer required")

	// ErrTemplateFailed wraps template execution failures.
	ErrTemplateFailed = errors.New("template execution failed")
)
