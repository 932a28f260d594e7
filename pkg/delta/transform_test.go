package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_ConcurrentInsertsNoPriorityBGoesFirst(t *testing.T) {
	a := []Op{NewInsertText("Hello", nil)}
	b := []Op{NewInsertText("Hi", nil)}

	bPrime, err := Transform(a, b, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []Op{NewInsertText("Hi", nil), NewRetain(5, nil)}, bPrime)
}

func TestTransform_PriorityOrdersConcurrentInsertsAFirst(t *testing.T) {
	a := []Op{NewInsertText("Hello", nil)}
	b := []Op{NewInsertText("Hi", nil)}

	bPrime, err := Transform(a, b, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []Op{NewRetain(5, nil), NewInsertText("Hi", nil)}, bPrime)
}

func TestTransform_DeleteOverDeleteYieldsNothing(t *testing.T) {
	a := []Op{NewDelete(5, nil)}
	b := []Op{NewDelete(5, nil)}

	bPrime, err := Transform(a, b, false, nil)
	require.NoError(t, err)
	assert.Empty(t, bPrime)
}

func TestTransform_DeleteSurvivesOverRetain(t *testing.T) {
	a := []Op{NewRetain(5, nil)}
	b := []Op{NewDelete(5, nil)}

	bPrime, err := Transform(a, b, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []Op{NewDelete(5, nil)}, bPrime)
}

func TestTransform_RetainAttributesUsePriority(t *testing.T) {
	a := []Op{NewRetain(5, Attributes{"bold": true})}
	b := []Op{NewRetain(5, Attributes{"bold": false})}

	bPrime, err := Transform(a, b, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []Op{NewRetain(5, nil)}, bPrime)
}

func TestTransform_TrailingBAppendedPastAEnd(t *testing.T) {
	a := []Op{NewRetain(3, nil)}
	b := []Op{NewRetain(3, nil), NewInsertText("tail", nil)}

	bPrime, err := Transform(a, b, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []Op{NewRetain(3, nil), NewInsertText("tail", nil)}, bPrime)
}

func TestTransform_TrailingAIsIrrelevant(t *testing.T) {
	a := []Op{NewRetain(3, nil), NewDelete(2, nil)}
	b := []Op{NewRetain(3, nil)}

	bPrime, err := Transform(a, b, false, nil)
	require.NoError(t, err)
	// b's own content survives in full; only a's trailing delete past
	// b's end (irrelevant to b) is dropped.
	assert.Equal(t, []Op{NewRetain(3, nil)}, bPrime)
}

func TestTransformPosition_InsertShiftsCursor(t *testing.T) {
	ops := []Op{NewRetain(2, nil), NewInsertText("xyz", nil)}
	// a low-priority insert exactly at the cursor still shifts it.
	assert.Equal(t, 5, TransformPosition(ops, 2, false))
}

func TestTransformPosition_PriorityPinsCursorAtInsertPoint(t *testing.T) {
	ops := []Op{NewRetain(2, nil), NewInsertText("xyz", nil)}
	assert.Equal(t, 2, TransformPosition(ops, 2, true))
}

func TestTransformPosition_DeleteBeforeCursorShiftsBack(t *testing.T) {
	ops := []Op{NewDelete(2, nil)}
	assert.Equal(t, 3, TransformPosition(ops, 5, false))
}

func TestTransformPosition_OpsAfterDeleteStillApply(t *testing.T) {
	// 2 chars removed before the cursor, then 2 chars inserted before
	// it: the net shift is zero, but both ops past the delete must
	// still be walked.
	ops := []Op{NewDelete(2, nil), NewRetain(3, nil), NewInsertText("XY", nil)}
	assert.Equal(t, 6, TransformPosition(ops, 6, false))
}
