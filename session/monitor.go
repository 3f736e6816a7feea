package session

import "github.com/poiesic/seekr/core"

// Monitor observes a session's fetch lifecycle.
type Monitor interface {
	FetchStarted(trigger, url string)
	FetchApplied(trigger string, resp *core.Response, added int)
	FetchFailed(trigger string, err error)
	FetchDropped(trigger string)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) FetchStarted(_, _ string)                     {}
func (n *noopMonitor) FetchApplied(_ string, _ *core.Response, _ int) {}
func (n *noopMonitor) FetchFailed(_ string, _ error)                {}
func (n *noopMonitor) FetchDropped(_ string)                        {}
