// Package embedhandlers provides the concrete, process-wide embed
// handler registry the core algebra deliberately does not own itself.
// Grounded on the teacher's session manager, whose map-of-interfaces
// keyed by a string ID is guarded by a single sync.RWMutex and read far
// more often than it is written; here the key is an embed type instead
// of a session ID.
package embedhandlers

import (
	"sync"

	"github.com/deltaweave/deltaweave/pkg/delta"
)

// Registry is a read-mostly mapping from embed type string to handler.
// Per spec.md §5, it is the algebra's sole process-wide state:
// installed during initialization, read without locking in the hot
// path via Lookup's snapshot.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]delta.EmbedHandler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]delta.EmbedHandler)}
}

// Register installs h for embedType, replacing any existing handler
// for that type.
func (r *Registry) Register(embedType string, h delta.EmbedHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[embedType] = h
}

// MustRegister is Register for callers building a static registry at
// init time, where a nil handler is a programmer error.
func (r *Registry) MustRegister(embedType string, h delta.EmbedHandler) {
	if h == nil {
		panic("embedhandlers: MustRegister called with a nil handler for " + embedType)
	}
	r.Register(embedType, h)
}

// Lookup returns a delta.HandlerLookup bound to a consistent snapshot
// of the registry at call time, so a single compose or transform call
// never observes a registration racing concurrently with it.
func (r *Registry) Lookup() delta.HandlerLookup {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]delta.EmbedHandler, len(r.handlers))
	for k, v := range r.handlers {
		snapshot[k] = v
	}
	return func(embedType string) (delta.EmbedHandler, bool) {
		h, ok := snapshot[embedType]
		return h, ok
	}
}

// NewDefaultRegistry returns a registry with the built-in "delta" and
// "image" handlers already installed.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("delta", DeltaHandler{Registry: r})
	r.MustRegister("image", ImageHandler{})
	return r
}
