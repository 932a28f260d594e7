package delta

// composeOps folds two consecutive op sequences into one equivalent
// sequence, per spec.md §4.4's composition table. Grounded on the
// teacher's compose.go, whose op1/op2 index-walking loop peels deletes
// from the first operand and inserts from the second before pairing
// the remainder by length; this function keeps that same peel order,
// extended to attributes and embeds.
func composeOps(a, b []Op, lookup HandlerLookup) ([]Op, error) {
	st := newStepper(a, b)
	out := newPusher()

	for !st.done() {
		x, xOK := st.peekA()
		y, yOK := st.peekB()

		// Deletes in a are not affected by anything in b: they remove
		// territory outright and are emitted as-is.
		if xOK && IsDelete(x) {
			st.advanceA()
			out.push(x)
			continue
		}

		// Inserts in b are new material layered on top of a's output;
		// they are emitted before whatever a contributes next.
		if yOK && IsInsert(y) {
			st.advanceB()
			out.push(y)
			continue
		}

		switch {
		case xOK && !yOK:
			// b is exhausted: a's remaining insert/retain ops (deletes
			// were already peeled above) pass through unchanged —
			// invariant I3, no information is silently dropped.
			st.advanceA()
			out.push(x)
			continue
		case !xOK && yOK:
			// a is exhausted: b's inserts were already peeled above.
			// A remaining delete in b is kept whole; a remaining
			// retain refers to territory past a's end and is dropped.
			st.advanceB()
			if IsDelete(y) {
				out.push(y)
			}
			continue
		case !xOK && !yOK:
			continue
		}

		x, y = st.pair()
		op, ok, err := composePair(x, y, lookup)
		if err != nil {
			return nil, err
		}
		if ok {
			out.push(op)
		}
	}

	return out.ops, nil
}

// composePair handles one already length-aligned slice pair. x comes
// from a (applied first), y from b (applied second); at this point x
// is known not to be a delete and y is known not to be an insert.
func composePair(x, y Op, lookup HandlerLookup) (Op, bool, error) {
	xAction, xKind := info(x)
	_, yKind := info(y)

	switch {
	case xAction == ActionInsert:
		if xKind == KindEmbed && yKind == KindEmbed && IsRetain(y) {
			e1, e2 := x.Value.(Embed), y.Value.(Embed)
			composed, err := composeEmbeds(lookup, e1, e2, false)
			if err != nil {
				return Op{}, false, err
			}
			return NewInsertEmbed(composed, ComposeAttributes(x.Attrs, y.Attrs, false)), true, nil
		}
		if IsDelete(y) {
			// insert immediately deleted: nothing survives.
			return Op{}, false, nil
		}
		// insert paired with a plain (or embed-as-opaque) retain.
		return Op{Action: ActionInsert, Value: x.Value, Attrs: ComposeAttributes(x.Attrs, y.Attrs, false)}, true, nil

	case xAction == ActionRetain:
		switch {
		case IsDelete(y):
			return NewDelete(Size(y), y.Attrs), true, nil
		case xKind == KindEmbed && yKind == KindEmbed:
			e1, e2 := x.Value.(Embed), y.Value.(Embed)
			composed, err := composeEmbeds(lookup, e1, e2, true)
			if err != nil {
				return Op{}, false, err
			}
			return NewRetainEmbed(composed, ComposeAttributes(x.Attrs, y.Attrs, false)), true, nil
		case xKind == KindEmbed:
			// retain-embed x retain-integer y: keep x's embed value.
			return NewRetainEmbed(x.Value.(Embed), ComposeAttributes(x.Attrs, y.Attrs, false)), true, nil
		case yKind == KindEmbed:
			// retain-integer x retain-embed y: keep y's embed value,
			// preserving any explicit null so a later consumer can
			// still realize the removal.
			return NewRetainEmbed(y.Value.(Embed), ComposeAttributes(x.Attrs, y.Attrs, true)), true, nil
		default:
			return NewRetain(Size(y), ComposeAttributes(x.Attrs, y.Attrs, false)), true, nil
		}

	default:
		return Op{}, false, &ProgrammerError{Msg: "composePair: unexpected action on x", Value: x}
	}
}

// Compose folds a then b into one equivalent change, per spec.md
// §4.4-4.5. The result is canonical (invariant I2).
func Compose(a, b []Op, lookup HandlerLookup) ([]Op, error) {
	return composeOps(a, b, lookup)
}
