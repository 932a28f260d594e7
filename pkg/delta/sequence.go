package delta

// Delta is a document or change expressed as a sequence of operations.
// A document is the degenerate case of a change containing only
// inserts; nothing in this package distinguishes the two beyond that
// convention, per spec.md §3.
type Delta []Op

// pusher is the canonicalizing appender behind Push and Compact,
// grounded on the teacher's Builder.Insert, whose "if the last op is a
// delete, splice the new insert before it" swap is generalized here
// into a full merge/ordering rule over any op pair (see push).
type pusher struct {
	ops []Op
}

func newPusher() *pusher {
	return &pusher{}
}

// push appends op to the output, canonicalizing per spec.md §4.5:
// zero-length ops are dropped, an insert is spliced before a trailing
// delete rather than after it, and an op that matches the action and
// attributes of whatever it lands next to is merged into it instead of
// appended as a new entry.
func (p *pusher) push(op Op) {
	if Size(op) == 0 {
		return
	}

	if len(p.ops) == 0 {
		p.ops = append(p.ops, op)
		return
	}

	last := len(p.ops) - 1
	if IsInsert(op) && IsDelete(p.ops[last]) {
		if last > 0 && mergeable(p.ops[last-1], op) {
			p.ops[last-1] = mergeOps(p.ops[last-1], op)
			return
		}
		p.ops = append(p.ops, Op{})
		copy(p.ops[last+1:], p.ops[last:])
		p.ops[last] = op
		return
	}

	if mergeable(p.ops[last], op) {
		p.ops[last] = mergeOps(p.ops[last], op)
		return
	}

	p.ops = append(p.ops, op)
}

// mergeable reports whether a and b can be folded into one op: same
// action, attribute-equal, and — for inserts — both plain text. Embed
// inserts never merge, since two single-key maps concatenated would
// not be a well-formed embed.
func mergeable(a, b Op) bool {
	if a.Action != b.Action {
		return false
	}
	if !AttributesEqual(a.Attrs, b.Attrs) {
		return false
	}
	_, aKind := info(a)
	_, bKind := info(b)
	if aKind != bKind {
		return false
	}
	return aKind != KindEmbed
}

// mergeOps concatenates text or sums integer lengths. Callers must
// have already confirmed mergeable(a, b).
func mergeOps(a, b Op) Op {
	switch v := a.Value.(type) {
	case string:
		return Op{Action: a.Action, Value: v + b.Value.(string), Attrs: a.Attrs}
	case int:
		return Op{Action: a.Action, Value: v + b.Value.(int), Attrs: a.Attrs}
	default:
		panic(&ProgrammerError{Msg: "mergeOps: unexpected value type", Value: a.Value})
	}
}

// Push appends op to ops under the canonicalizing rules and returns
// the result.
func Push(ops []Op, op Op) []Op {
	p := &pusher{ops: ops}
	p.push(op)
	return p.ops
}

// Compact reapplies the canonicalizing push to every op of an
// arbitrary sequence, producing its canonical form (P1, P7).
func Compact(ops []Op) []Op {
	out := newPusher()
	for _, op := range ops {
		out.push(op)
	}
	return out.ops
}

// sliceOps is the shared walk behind Slice and SliceMax; useMax
// switches the right-edge trim of a straddling insert from an exact
// grapheme cut to TakeMax's "extend to the next boundary" behavior.
func sliceOps(ops []Op, start, length int, useMax bool) []Op {
	out := newPusher()
	end := start + length
	pos := 0

	for _, op := range ops {
		if pos >= end {
			break
		}
		opLen := Size(op)
		opEnd := pos + opLen
		if opEnd <= start {
			pos = opEnd
			continue
		}

		cur := op
		if pos < start {
			_, cur, _ = Take(cur, start-pos)
		}

		localStart := pos
		if localStart < start {
			localStart = start
		}
		if localStart+Size(cur) > end {
			keep := end - localStart
			if useMax {
				if s, ok := cur.Value.(string); ok {
					cur = Op{Action: cur.Action, Value: takeMaxGraphemes(s, keep), Attrs: cur.Attrs}
				} else {
					cur, _, _ = Take(cur, keep)
				}
			} else {
				cur, _, _ = Take(cur, keep)
			}
		}

		out.push(cur)
		pos = opEnd
	}

	return out.ops
}

// Slice returns the canonical subsequence covering character range
// [start, start+length), splitting any op that straddles an edge.
func Slice(ops []Op, start, length int) []Op {
	return sliceOps(ops, start, length, false)
}

// SliceMax differs from Slice only at the right edge: an insert that
// straddles start+length is trimmed with TakeMax rather than Take.
// Because lengths count whole graphemes, the cut at length already
// falls on a grapheme boundary, so the result equals Slice's.
func SliceMax(ops []Op, start, length int) []Op {
	return sliceOps(ops, start, length, true)
}

// SplitSequence walks ops, calling predicate(op, index) at each one
// (index is that op's starting offset). The first time predicate
// reports a split point, the sequence is cleaved there — splitting the
// op itself via Take when the point falls strictly inside it — and the
// two halves are returned. If predicate never reports a split point,
// head is the whole sequence and tail is nil.
func SplitSequence(ops []Op, predicate func(op Op, index int) (splitAt int, found bool)) (head, tail []Op) {
	pos := 0
	for i, op := range ops {
		at, found := predicate(op, pos)
		if !found {
			head = append(head, op)
			pos += Size(op)
			continue
		}
		if at > 0 {
			left, right, _ := Take(op, at)
			head = append(head, left)
			tail = append(tail, right)
		} else {
			tail = append(tail, op)
		}
		tail = append(tail, ops[i+1:]...)
		return head, tail
	}
	return head, tail
}

// Compose folds d then other into one equivalent change (method form
// of Compose).
func (d Delta) Compose(other Delta, lookup HandlerLookup) (Delta, error) {
	ops, err := composeOps(d, other, lookup)
	if err != nil {
		return nil, err
	}
	return Delta(ops), nil
}

// Transform rebases other against d, producing other' (method form of
// Transform).
func (d Delta) Transform(other Delta, priority bool, lookup HandlerLookup) (Delta, error) {
	ops, err := transformOps(d, other, priority, lookup)
	if err != nil {
		return nil, err
	}
	return Delta(ops), nil
}

// TransformPosition rebases index through d.
func (d Delta) TransformPosition(index int, priority bool) int {
	return TransformPosition(d, index, priority)
}

// Push appends op under the canonicalizing rules and returns the
// resulting Delta.
func (d Delta) Push(op Op) Delta {
	return Delta(Push(d, op))
}

// Slice returns the canonical subsequence covering [start, start+length).
func (d Delta) Slice(start, length int) Delta {
	return Delta(Slice(d, start, length))
}

// SliceMax is Slice with the right edge extended to the next grapheme boundary.
func (d Delta) SliceMax(start, length int) Delta {
	return Delta(SliceMax(d, start, length))
}

// Split cleaves d at the first point predicate reports.
func (d Delta) Split(predicate func(op Op, index int) (int, bool)) (head, tail Delta) {
	h, t := SplitSequence(d, predicate)
	return Delta(h), Delta(t)
}

// Compact returns d's canonical form.
func (d Delta) Compact() Delta {
	return Delta(Compact(d))
}

// Len returns the total size of d, the sum of each op's Size.
func (d Delta) Len() int {
	n := 0
	for _, op := range d {
		n += Size(op)
	}
	return n
}
