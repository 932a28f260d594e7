package deltadiff

import "github.com/deltaweave/deltaweave/pkg/delta"

// Invert produces the change that undoes change when applied to the
// document base (the state change was computed against), i.e.
// base.Compose(change).Compose(Invert(change, base)) == base.
//
// Grounded on the teacher's Operation.Invert, which builds the inverse
// op by op from the base text; generalized here to attributes (via
// delta.DiffAttributes) and to embeds (via each embed handler's
// Invert, resolved through lookup).
func Invert(change, base []delta.Op, lookup delta.HandlerLookup) ([]delta.Op, error) {
	var out []delta.Op
	pos := 0

	for _, op := range change {
		switch {
		case delta.IsInsert(op):
			// undoing an insert removes exactly what was inserted.
			out = append(out, delta.NewDelete(delta.Size(op), nil))

		case delta.Is(op, delta.ActionRetain, delta.KindInteger) && !delta.HasAttributes(op):
			// no content or formatting changed here; the inverse is
			// the same retain, unexamined.
			out = append(out, delta.NewRetain(delta.Size(op), nil))
			pos += delta.Size(op)

		case delta.IsRetain(op):
			baseSlice := delta.Slice(base, pos, delta.Size(op))
			inverted, err := invertRetain(op, baseSlice, lookup)
			if err != nil {
				return nil, err
			}
			out = append(out, inverted...)
			pos += delta.Size(op)

		case delta.IsDelete(op):
			// undoing a delete re-inserts exactly the base content
			// that occupied this range.
			baseSlice := delta.Slice(base, pos, delta.Size(op))
			out = append(out, baseSlice...)
			pos += delta.Size(op)
		}
	}

	return delta.Compact(out), nil
}

// invertRetain handles a single attribute- or embed-bearing retain
// against the base ops it covers, reformatting back to base's
// attributes one base op at a time.
func invertRetain(op Op, baseSlice []delta.Op, lookup delta.HandlerLookup) ([]delta.Op, error) {
	var out []delta.Op
	for _, baseOp := range baseSlice {
		if embed, ok := op.Value.(delta.Embed); ok {
			baseEmbed, ok := baseOp.Value.(delta.Embed)
			if !ok || baseEmbed.Type() != embed.Type() {
				return nil, &delta.EmbedMismatchError{Left: embed, Right: baseOp.Value}
			}
			h, err := handlerFor(lookup, embed)
			if err != nil {
				return nil, err
			}
			inverted, err := h.Invert(embed.Value(), baseEmbed.Value())
			if err != nil {
				return nil, err
			}
			diffAttrs := delta.DiffAttributes(op.Attrs, baseOp.Attrs)
			out = append(out, delta.NewRetainEmbed(delta.Embed{embed.Type(): inverted}, diffAttrs))
			continue
		}

		diffAttrs := delta.DiffAttributes(op.Attrs, baseOp.Attrs)
		out = append(out, delta.NewRetain(delta.Size(baseOp), diffAttrs))
	}
	return out, nil
}

func handlerFor(lookup delta.HandlerLookup, e delta.Embed) (delta.EmbedHandler, error) {
	if lookup == nil {
		return nil, &delta.UnknownEmbedTypeError{Type: e.Type()}
	}
	h, ok := lookup(e.Type())
	if !ok {
		return nil, &delta.UnknownEmbedTypeError{Type: e.Type()}
	}
	return h, nil
}

// Op is a local alias so invertRetain's signature reads naturally;
// identical to delta.Op.
type Op = delta.Op
