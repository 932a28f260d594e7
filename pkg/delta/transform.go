package delta

// transformOps rebases b against a, per spec.md §4.4's transformation
// table. Grounded on the teacher's transform.go, whose op1/op2 walk
// peels inserts from either side before pairing by length; unlike the
// teacher's symmetric Transform (which returns both a' and b'), this
// produces only b' — the Quill Delta convention, where the caller
// already knows which side is "ours" and which is "theirs".
func transformOps(a, b []Op, priority bool, lookup HandlerLookup) ([]Op, error) {
	st := newStepper(a, b)
	out := newPusher()

	for !st.done() {
		x, xOK := st.peekA()
		y, yOK := st.peekB()
		xIsInsert := xOK && IsInsert(x)
		yIsInsert := yOK && IsInsert(y)

		// a's insert introduced content b never saw; b' must retain
		// past it so later b ops still land on the right territory —
		// unless b also inserts here and a does not have priority, in
		// which case b's insert goes first (see the next branch).
		if xIsInsert && (priority || !yIsInsert) {
			st.advanceA()
			out.push(NewRetain(Size(x), nil))
			continue
		}

		// b's insert is new material with nothing in a to rebase
		// against; it passes through untouched.
		if yIsInsert {
			st.advanceB()
			out.push(y)
			continue
		}

		switch {
		case xOK && !yOK:
			// b is exhausted; trailing a is irrelevant to the result.
			st.advanceA()
			continue
		case !xOK && yOK:
			// a is exhausted; remaining b applies past a's end as-is.
			st.advanceB()
			out.push(y)
			continue
		case !xOK && !yOK:
			continue
		}

		x, y = st.pair()
		op, ok, err := transformPair(x, y, priority, lookup)
		if err != nil {
			return nil, err
		}
		if ok {
			out.push(op)
		}
	}

	return out.ops, nil
}

// transformPair handles one already length-aligned slice pair. At this
// point neither x nor y is an insert (both were peeled above).
func transformPair(x, y Op, priority bool, lookup HandlerLookup) (Op, bool, error) {
	if IsDelete(x) {
		// a already removed this territory; b's op over it is moot.
		return Op{}, false, nil
	}
	if IsDelete(y) {
		// b's delete still applies regardless of a's retain.
		return y, true, nil
	}

	_, xKind := info(x)
	_, yKind := info(y)

	switch {
	case xKind == KindEmbed && yKind == KindEmbed:
		e1, e2 := x.Value.(Embed), y.Value.(Embed)
		transformed, err := transformEmbeds(lookup, e1, e2, priority)
		if err != nil {
			return Op{}, false, err
		}
		return NewRetainEmbed(transformed, TransformAttributes(x.Attrs, y.Attrs, priority)), true, nil

	case yKind == KindEmbed:
		// retain-integer x, retain-embed y: y's embed value survives.
		return NewRetainEmbed(y.Value.(Embed), TransformAttributes(x.Attrs, y.Attrs, priority)), true, nil

	default:
		return NewRetain(Size(x), TransformAttributes(x.Attrs, y.Attrs, priority)), true, nil
	}
}

// Transform rebases b against a, producing b'. Per spec.md §4.4-4.5;
// the result is canonical (invariant I2).
func Transform(a, b []Op, priority bool, lookup HandlerLookup) ([]Op, error) {
	return transformOps(a, b, priority, lookup)
}

// TransformPositionStep advances a cursor (offset, index) one op
// through the walk transform_position uses to rebase a point against a
// change. offset tracks the walking position in the post-change
// document; index is the cursor being rebased.
func TransformPositionStep(offset, index int, op Op, priority bool) (newOffset, newIndex int) {
	switch {
	case IsInsert(op):
		length := Size(op)
		if offset < index || !priority {
			index += length
		}
		return offset + length, index

	case IsDelete(op):
		length := Size(op)
		consumed := length
		if index-offset < consumed {
			consumed = index - offset
		}
		if consumed < 0 {
			consumed = 0
		}
		// A delete contributes nothing to the post-change document, so
		// offset must not advance across it — only retain/insert do.
		return offset, index - consumed

	default: // retain
		return offset + Size(op), index
	}
}

// TransformPosition rebases a single cursor index through an entire
// change, applying TransformPositionStep op by op. priority true means
// the change itself wins ties at the cursor's exact position (an
// insert exactly at index does not push the cursor forward).
func TransformPosition(ops []Op, index int, priority bool) int {
	offset := 0
	for _, op := range ops {
		if offset > index {
			break
		}
		offset, index = TransformPositionStep(offset, index, op, priority)
	}
	return index
}
