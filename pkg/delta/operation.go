package delta

// NewInsertText constructs an insert of a non-empty text string.
// Dropping an empty attribute map on construction is required by
// invariant I1; an empty text insert with attributes is a programmer
// error since there is nothing to attach them to.
func NewInsertText(s string, attrs Attributes) Op {
	if s == "" && len(attrs) > 0 {
		panic(ErrEmptyInsert)
	}
	return Op{Action: ActionInsert, Value: s, Attrs: normalizeAttrs(attrs)}
}

// NewInsertEmbed constructs an insert of an embed value.
func NewInsertEmbed(e Embed, attrs Attributes) Op {
	return Op{Action: ActionInsert, Value: e, Attrs: normalizeAttrs(attrs)}
}

// NewRetain constructs a retain of n integer units. n must be
// non-negative per spec.md §6.
func NewRetain(n int, attrs Attributes) Op {
	if n < 0 {
		panic(ErrNegativeLength)
	}
	return Op{Action: ActionRetain, Value: n, Attrs: normalizeAttrs(attrs)}
}

// NewRetainEmbed constructs a retain whose value is an embed (a
// "retain into" an embedded document, e.g. modifying a nested Delta's
// attributes without replacing it).
func NewRetainEmbed(e Embed, attrs Attributes) Op {
	return Op{Action: ActionRetain, Value: e, Attrs: normalizeAttrs(attrs)}
}

// NewDelete constructs a delete of n units. n must be non-negative per
// spec.md §6.
func NewDelete(n int, attrs Attributes) Op {
	if n < 0 {
		panic(ErrNegativeLength)
	}
	return Op{Action: ActionDelete, Value: n, Attrs: normalizeAttrs(attrs)}
}

// normalizeAttrs enforces I1: an absent attribute map is represented
// as nil, never as a non-nil empty map.
func normalizeAttrs(attrs Attributes) Attributes {
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

// info classifies op into its (Action, Kind) pair, the dispatch key
// used throughout compose.go and transform.go.
func info(op Op) (Action, Kind) {
	switch v := op.Value.(type) {
	case string:
		return op.Action, KindText
	case int:
		return op.Action, KindInteger
	case Embed:
		_ = v
		return op.Action, KindEmbed
	default:
		panic(&ProgrammerError{Msg: "op value has unsupported type", Value: op.Value})
	}
}

// Is reports whether op's action and value kind match. Pass KindAny to
// match any kind.
func Is(op Op, action Action, kind Kind) bool {
	a, k := info(op)
	if a != action {
		return false
	}
	return kind == KindAny || k == kind
}

// IsInsert reports whether op is an insert, of any value kind.
func IsInsert(op Op) bool { return op.Action == ActionInsert }

// IsRetain reports whether op is a retain, of any value kind.
func IsRetain(op Op) bool { return op.Action == ActionRetain }

// IsDelete reports whether op is a delete.
func IsDelete(op Op) bool { return op.Action == ActionDelete }

// HasAttributes reports whether op carries a non-empty attribute map.
func HasAttributes(op Op) bool { return len(op.Attrs) > 0 }

// Size returns op's length per invariant I4: the grapheme count of
// insert text, the integer value for retain/delete, and 1 for any
// embed regardless of its internal content.
func Size(op Op) int {
	switch v := op.Value.(type) {
	case string:
		return graphemeCount(v)
	case int:
		return v
	case Embed:
		return 1
	default:
		panic(&ProgrammerError{Msg: "op value has unsupported type", Value: op.Value})
	}
}

// Take trims n length-units from the front of op, returning the
// left part (length n) and the remainder (length Size(op)-n).
// indivisible is true only when an embed is taken whole (n == 1): left
// then equals op, and rest is a zero-length placeholder that callers
// do not continue consuming. For an embed with n == 0, left is that
// zero-length placeholder, rest equals op, and indivisible is false.
//
// For text inserts the split falls on a grapheme boundary (§4.1); for
// integer retains/deletes it is ordinary integer arithmetic; for
// embeds (insert or retain) n must be 0 or 1 — anything else is a
// programmer error, since the stepper guarantees n = min(size(a),
// size(b)) and an embed's size is always exactly 1.
//
// Attributes are duplicated onto both halves of a text or integer
// split; the zero-length placeholder of an embed carries none.
func Take(op Op, n int) (left, rest Op, indivisible bool) {
	size := Size(op)
	if n < 0 || n > size {
		panic(ErrTakeOverflow)
	}

	switch v := op.Value.(type) {
	case string:
		if n == 0 {
			return Op{Action: op.Action, Value: "", Attrs: op.Attrs}, op, false
		}
		if n == size {
			return op, Op{Action: op.Action, Value: "", Attrs: op.Attrs}, false
		}
		l, r := splitGraphemes(v, n)
		return Op{Action: op.Action, Value: l, Attrs: op.Attrs},
			Op{Action: op.Action, Value: r, Attrs: op.Attrs},
			false

	case int:
		left = Op{Action: op.Action, Value: n, Attrs: op.Attrs}
		rest = Op{Action: op.Action, Value: v - n, Attrs: op.Attrs}
		return left, rest, false

	case Embed:
		if n == 0 {
			return zeroOfSameKind(op), op, false
		}
		// n == 1 == size: the embed is consumed whole.
		return op, zeroOfSameKind(op), true

	default:
		panic(&ProgrammerError{Msg: "op value has unsupported type", Value: op.Value})
	}
}

// zeroOfSameKind returns a zero-length op with op's action, an integer
// value of 0 and no attributes, used as the "nothing consumed yet" half of
// Take(op, 0) for embeds (an embed has no zero-length form of its own
// kind, so we fall back to an empty integer op — callers only ever
// inspect its Size(), which is 0, never its Value kind, in that case).
func zeroOfSameKind(op Op) Op {
	return Op{Action: op.Action, Value: 0, Attrs: nil}
}
