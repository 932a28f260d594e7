package embedhandlers

import (
	"fmt"

	"github.com/deltaweave/deltaweave/pkg/delta"
	"github.com/deltaweave/deltaweave/pkg/deltadiff"
)

// DeltaHandler is the built-in handler for the "delta" embed type: a
// delta-valued embed (e.g. a table cell holding its own rich-text
// document) composes and transforms by re-entering the sequence
// engine on its contents, per spec.md §4.6. Registry, when set, lets
// nested deltas resolve their own embeds recursively; when nil, no
// embed type resolves inside a nested delta.
type DeltaHandler struct {
	Registry *Registry
}

func (h DeltaHandler) lookup() delta.HandlerLookup {
	if h.Registry == nil {
		return nil
	}
	return h.Registry.Lookup()
}

// Compose folds two nested deltas by composing their op sequences.
func (h DeltaHandler) Compose(e1, e2 any, isRetain bool) (any, error) {
	ops1, err := asOps(e1)
	if err != nil {
		return nil, err
	}
	ops2, err := asOps(e2)
	if err != nil {
		return nil, err
	}
	composed, err := delta.Compose(ops1, ops2, h.lookup())
	if err != nil {
		return nil, err
	}
	return delta.Delta(composed), nil
}

// Transform rebases one nested delta against another.
func (h DeltaHandler) Transform(e1, e2 any, priority bool) (any, error) {
	ops1, err := asOps(e1)
	if err != nil {
		return nil, err
	}
	ops2, err := asOps(e2)
	if err != nil {
		return nil, err
	}
	transformed, err := delta.Transform(ops1, ops2, priority, h.lookup())
	if err != nil {
		return nil, err
	}
	return delta.Delta(transformed), nil
}

// Invert produces the nested delta's inverse against its prior
// content, delegating to the whole-document facade since a nested
// delta is itself a complete document.
func (h DeltaHandler) Invert(e, base any) (any, error) {
	ops, err := asOps(e)
	if err != nil {
		return nil, err
	}
	baseOps, err := asOps(base)
	if err != nil {
		return nil, err
	}
	inverted, err := deltadiff.Invert(ops, baseOps, h.lookup())
	if err != nil {
		return nil, err
	}
	return delta.Delta(inverted), nil
}

// asOps accepts either delta.Delta or []delta.Op as the embed's
// opaque value (both are the same underlying slice type; wire
// deserialization produces delta.Delta, in-process construction often
// uses a bare []delta.Op).
func asOps(v any) ([]delta.Op, error) {
	switch ops := v.(type) {
	case delta.Delta:
		return []delta.Op(ops), nil
	case []delta.Op:
		return ops, nil
	default:
		return nil, fmt.Errorf("embedhandlers: delta handler expects a nested delta, got %T", v)
	}
}
