package delta

// stepper aligns two operation streams one synchronized slice at a
// time. Grounded on the i1/i2 index-walking loop duplicated in the
// teacher's compose.go and transform.go (operational-transform-go);
// factored into one reusable type here instead of repeating the walk
// in both files.
//
// Usage follows spec.md §4.4: a caller first peels off any head that
// bypasses pairing entirely (an insert is "new material" that never
// consumes length from the other side; in compose a delete from A
// behaves the same way) via advanceA/advanceB, then once both
// remaining heads are poolable, calls pair to trim both to
// n = min(size(headA), size(headB)).
type stepper struct {
	opsA, opsB   []Op
	idxA, idxB   int
	headA, headB *Op
}

func newStepper(a, b []Op) *stepper {
	s := &stepper{opsA: a, opsB: b}
	s.headA = s.pull(&s.idxA, s.opsA)
	s.headB = s.pull(&s.idxB, s.opsB)
	return s
}

func (s *stepper) pull(idx *int, ops []Op) *Op {
	if *idx >= len(ops) {
		return nil
	}
	op := ops[*idx]
	*idx++
	return &op
}

// done reports whether both streams are exhausted.
func (s *stepper) done() bool {
	return s.headA == nil && s.headB == nil
}

// peekA returns the current head of a, if any.
func (s *stepper) peekA() (Op, bool) {
	if s.headA == nil {
		return Op{}, false
	}
	return *s.headA, true
}

// peekB returns the current head of b, if any.
func (s *stepper) peekB() (Op, bool) {
	if s.headB == nil {
		return Op{}, false
	}
	return *s.headB, true
}

// advanceA consumes and returns the current head of a whole, advancing
// to the next op. Used when a head bypasses length pairing entirely.
func (s *stepper) advanceA() Op {
	op := *s.headA
	s.headA = s.pull(&s.idxA, s.opsA)
	return op
}

// advanceB consumes and returns the current head of b whole, advancing
// to the next op.
func (s *stepper) advanceB() Op {
	op := *s.headB
	s.headB = s.pull(&s.idxB, s.opsB)
	return op
}

// pair trims both heads to n = min(size(headA), size(headB)) and
// returns the aligned slice pair; the consumed amount is subtracted
// from both heads, refilling from the underlying slice when a head is
// fully consumed. Must only be called when both headA and headB are
// non-nil.
func (s *stepper) pair() (x, y Op) {
	n := min(Size(*s.headA), Size(*s.headB))

	lx, rx, indivisibleX := Take(*s.headA, n)
	if indivisibleX || Size(rx) == 0 {
		s.headA = s.pull(&s.idxA, s.opsA)
	} else {
		s.headA = &rx
	}

	ly, ry, indivisibleY := Take(*s.headB, n)
	if indivisibleY || Size(ry) == 0 {
		s.headB = s.pull(&s.idxB, s.opsB)
	} else {
		s.headB = &ry
	}

	return lx, ly
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
