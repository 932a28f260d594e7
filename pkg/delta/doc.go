// Package delta implements the operation algebra behind rich-text
// operational transformation, wire-compatible with the Quill "Delta"
// format.
//
// A document or change is a sequence of insert/retain/delete
// operations, each optionally carrying formatting attributes. The
// package provides composition (folding two sequential changes into
// one), transformation (rebasing a change against a concurrent one),
// slicing, splitting, and canonical compaction — the algebra
// collaborative editors need to converge replicas and rebase local
// edits against remote ones.
//
// The package is pure and synchronous: every exported function is a
// deterministic function of its inputs, with no shared mutable state
// and no I/O. Embedded, non-text content (images, nested deltas) is
// delegated to a caller-supplied HandlerLookup rather than a
// package-global registry — see embed.go.
package delta
