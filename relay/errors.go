package relay

import "errors"

var (
	// ErrConfigRequired is returned when a relay is built without configuration.
	ErrConfigRequired = errors.New("relay config required")

	// ErrBodyTooLarge is returned when a backend response exceeds MaxBodySize.
	ErrBodyTooLarge = errors.New("backend response too large")

	// ErrHeadNotFound is returned when a raw response head carries no status code.
	ErrHeadNotFound = errors.New("no status code in response head")
)
