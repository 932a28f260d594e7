package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphemeLen_ASCII(t *testing.T) {
	assert.Equal(t, 5, GraphemeLen("Hello"))
}

func TestGraphemeLen_ZWJSequence(t *testing.T) {
	// woman mountain biking, medium-light skin tone: a single
	// user-perceived character built from several code points joined
	// with ZWJ and a skin-tone modifier.
	s := "🚵🏻‍♀️"
	assert.Equal(t, 1, GraphemeLen(s))
}

func TestSplit_DoesNotBreakCluster(t *testing.T) {
	s := "01🚵🏻‍♀️345"
	left, right := Split(s, 1)
	assert.Equal(t, "0", left)
	assert.Equal(t, "1🚵🏻‍♀️345", right)
}

func TestSplit_Roundtrip(t *testing.T) {
	s := "Take the 💊💊"
	for n := 0; n <= GraphemeLen(s); n++ {
		left, right := Split(s, n)
		assert.Equal(t, s, left+right, "n=%d", n)
	}
}

func TestTakeMax_AgreesWithSplitOnGraphemeCounts(t *testing.T) {
	// n already counts whole graphemes, so TakeMax can never need to
	// extend past one; it must agree with the left half of Split.
	s := "01🚵🏻‍♀️345"
	for n := 0; n <= GraphemeLen(s); n++ {
		left, _ := Split(s, n)
		assert.Equal(t, left, TakeMax(s, n), "n=%d", n)
	}
}

func TestTakeMax_BeyondLengthReturnsWhole(t *testing.T) {
	s := "abc"
	assert.Equal(t, s, TakeMax(s, 100))
}
