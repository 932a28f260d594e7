package delta

import (
	"github.com/clipperhouse/uax29/graphemes"
)

// segment splits s into its extended grapheme clusters per UAX #29.
// Grounded on the teacher's pkg/rope/graphemes.go, which builds a
// Grapheme iterator over graphemes.SegmentAllString(content); here we
// use the same entry point directly since the core algebra only ever
// needs the boundary list, not a stateful iterator over rope storage.
func segment(s string) []string {
	if s == "" {
		return nil
	}
	return graphemes.SegmentAllString(s)
}

// graphemeCount returns the number of extended grapheme clusters
// (user-perceived characters) in s. This is the length function
// insert text must use — never a code-point or UTF-16 count.
func graphemeCount(s string) int {
	return len(segment(s))
}

// splitGraphemes splits s into (left, right) such that left consists
// of exactly the first n grapheme clusters of s and right the
// remainder. The boundary never falls inside a cluster. Callers must
// ensure 0 <= n <= graphemeCount(s); the stepper guarantees this via
// Take's contract.
func splitGraphemes(s string, n int) (left, right string) {
	if n <= 0 {
		return "", s
	}
	segs := segment(s)
	if n >= len(segs) {
		return s, ""
	}
	boundary := 0
	for _, g := range segs[:n] {
		boundary += len(g)
	}
	return s[:boundary], s[boundary:]
}

// takeMaxGraphemes returns the smallest prefix of s whose grapheme
// count is at least n: if the boundary at n would land mid-cluster it
// extends right until the cluster completes. If n >= graphemeCount(s),
// s is returned unchanged.
func takeMaxGraphemes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	segs := segment(s)
	if n >= len(segs) {
		return s
	}
	boundary := 0
	for _, g := range segs[:n] {
		boundary += len(g)
	}
	return s[:boundary]
}

// Split returns the first n graphemes of s and the remainder. It is
// the exported form of splitGraphemes, for callers outside this
// package that need grapheme-safe splitting without going through a
// full Op.
func Split(s string, n int) (left, right string) {
	return splitGraphemes(s, n)
}

// TakeMax returns the smallest prefix of s whose grapheme count is at
// least n, extending rightward to avoid splitting a cluster. Used by
// SliceMax's right-edge handling.
func TakeMax(s string, n int) string {
	return takeMaxGraphemes(s, n)
}

// GraphemeLen returns the UAX #29 extended grapheme cluster count of
// s. Exported so callers can compute insert-text lengths the same way
// Size does internally.
func GraphemeLen(s string) int {
	return graphemeCount(s)
}
