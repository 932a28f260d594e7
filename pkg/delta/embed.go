package delta

// EmbedHandler is the contract by which typed embedded content
// participates in the algebra. A handler for embed type T provides
// three pure functions; implementations must be stateless.
type EmbedHandler interface {
	// Compose folds two embed values of the handler's type. isRetain
	// distinguishes retain-over-retain (true) from insert-over-retain
	// (false): only the latter realizes attribute-like removals
	// embedded in e2, mirroring ComposeAttributes's keepNulls split.
	Compose(e1, e2 any, isRetain bool) (any, error)

	// Transform rebases e2 against e1. priority is the same
	// tie-breaking flag as TransformAttributes: true means e1 wins on
	// conflicts.
	Transform(e1, e2 any, priority bool) (any, error)

	// Invert produces the inverse of applying e against base, the
	// pre-change value. Required for the out-of-core-scope
	// whole-document invert path (pkg/deltadiff); the core algebra
	// does not call Invert during Compose or Transform.
	Invert(e, base any) (any, error)
}

// HandlerLookup resolves an embed type string to its handler. The
// core package never constructs or owns a registry itself — spec.md
// scopes the concrete registry lookup mechanism out of core — it only
// consumes this function, threaded explicitly through Compose and
// Transform. See pkg/embedhandlers for a concrete, process-wide
// implementation.
type HandlerLookup func(embedType string) (EmbedHandler, bool)

// lookupOrErr resolves the handler for embed e's type, or an error
// naming the offending type if none is registered.
func lookupOrErr(lookup HandlerLookup, e Embed) (EmbedHandler, error) {
	if !e.valid() {
		return nil, &EmbedMismatchError{Left: e}
	}
	t := e.Type()
	if lookup == nil {
		return nil, &UnknownEmbedTypeError{Type: t}
	}
	h, ok := lookup(t)
	if !ok {
		return nil, &UnknownEmbedTypeError{Type: t}
	}
	return h, nil
}

// composeEmbeds folds two same-typed embeds through their registered
// handler, wrapping the result back into a single-key Embed.
func composeEmbeds(lookup HandlerLookup, e1, e2 Embed, isRetain bool) (Embed, error) {
	if e1.Type() != e2.Type() {
		return nil, &EmbedMismatchError{Left: e1, Right: e2}
	}
	h, err := lookupOrErr(lookup, e1)
	if err != nil {
		return nil, err
	}
	result, err := h.Compose(e1.Value(), e2.Value(), isRetain)
	if err != nil {
		return nil, err
	}
	return Embed{e1.Type(): result}, nil
}

// transformEmbeds rebases e2 against e1 through their registered
// handler.
func transformEmbeds(lookup HandlerLookup, e1, e2 Embed, priority bool) (Embed, error) {
	if e1.Type() != e2.Type() {
		return nil, &EmbedMismatchError{Left: e1, Right: e2}
	}
	h, err := lookupOrErr(lookup, e1)
	if err != nil {
		return nil, err
	}
	result, err := h.Transform(e1.Value(), e2.Value(), priority)
	if err != nil {
		return nil, err
	}
	return Embed{e1.Type(): result}, nil
}
