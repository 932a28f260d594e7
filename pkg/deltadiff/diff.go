// Package deltadiff provides the whole-document facade functions the
// core algebra explicitly excludes from its own scope: a convenience
// diff between two documents, and a whole-document invert for undo.
// Grounded on the teacher's PatchManager, which drives
// diffmatchpatch.DiffMain over plain text; here the result is
// re-expressed as a Delta change instead of a compact patch string.
package deltadiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/deltaweave/deltaweave/pkg/delta"
)

// embedPlaceholderBase is the first of the Unicode Private Use Area
// runes substituted for embed ops (one per embed, counting up from
// here) so the text-level diff algorithm treats an embed as a
// single atomic unit, the same trick the diffmatchpatch-based text
// diff of a rich document needs regardless of host language.
const embedPlaceholderBase = 0xE000

// flatten renders an insert-only Delta as a string of its text content
// plus one placeholder rune per embed, returning the side table to
// expand placeholders back into their original ops.
func flatten(doc []delta.Op) (string, map[rune]delta.Op) {
	var b strings.Builder
	placeholders := make(map[rune]delta.Op)
	next := rune(embedPlaceholderBase)

	for _, op := range doc {
		switch v := op.Value.(type) {
		case string:
			b.WriteString(v)
		case delta.Embed:
			placeholders[next] = op
			b.WriteRune(next)
			next++
		default:
			// integer values never appear in an insert-only document.
		}
	}
	return b.String(), placeholders
}

// expand turns a run of flattened characters back into insert ops,
// substituting embeds for their placeholder runes and merging
// consecutive plain-text runes into one text insert.
func expand(s string, placeholders map[rune]delta.Op, attrs delta.Attributes) []delta.Op {
	var out []delta.Op
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			out = append(out, delta.NewInsertText(text.String(), attrs))
			text.Reset()
		}
	}

	for _, r := range s {
		if op, ok := placeholders[r]; ok {
			flush()
			out = append(out, delta.NewInsertEmbed(op.Value.(delta.Embed), attrs))
			continue
		}
		text.WriteRune(r)
	}
	flush()
	return out
}

// Diff returns the change that composes with a to produce b, for two
// insert-only documents. This is a convenience built on a real
// character-diff library rather than the minimal-diff algorithm
// itself, which the core algebra does not provide.
//
// Attribute changes within a run both diffs call "equal" are not
// detected here — Diff only reports insertions and deletions of
// content; formatting-only changes require a caller to additionally
// compare ops at the same offsets via delta.DiffAttributes. Inserted
// text and embeds in the result carry no attributes, even where b's
// content had them.
func Diff(a, b []delta.Op) ([]delta.Op, error) {
	oldFlat, oldPlaceholders := flatten(a)
	newFlat, newPlaceholders := flatten(b)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldFlat, newFlat, true)

	var out []delta.Op
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			out = append(out, delta.NewRetain(delta.GraphemeLen(d.Text), nil))
		case diffmatchpatch.DiffInsert:
			out = append(out, expand(d.Text, newPlaceholders, nil)...)
		case diffmatchpatch.DiffDelete:
			out = append(out, delta.NewDelete(delta.GraphemeLen(d.Text), nil))
		}
	}
	_ = oldPlaceholders
	return delta.Compact(out), nil
}
