package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInsertText_DropsEmptyAttrs(t *testing.T) {
	op := NewInsertText("abc", Attributes{})
	assert.Nil(t, op.Attrs)
}

func TestNewInsertText_EmptyWithAttrsPanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrEmptyInsert, func() {
		NewInsertText("", Attributes{"bold": true})
	})
}

func TestNewRetain_NegativePanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrNegativeLength, func() {
		NewRetain(-1, nil)
	})
}

func TestNewDelete_NegativePanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrNegativeLength, func() {
		NewDelete(-1, nil)
	})
}

func TestSize_Text(t *testing.T) {
	op := NewInsertText("Take the 💊💊", nil)
	assert.Equal(t, 11, Size(op))
}

func TestSize_IntegerAndEmbed(t *testing.T) {
	assert.Equal(t, 5, Size(NewRetain(5, nil)))
	assert.Equal(t, 3, Size(NewDelete(3, nil)))
	assert.Equal(t, 1, Size(NewInsertEmbed(Embed{"image": "i.png"}, nil)))
}

func TestIsHelpers(t *testing.T) {
	ins := NewInsertText("x", nil)
	ret := NewRetain(1, nil)
	del := NewDelete(1, nil)

	assert.True(t, IsInsert(ins))
	assert.True(t, IsRetain(ret))
	assert.True(t, IsDelete(del))
	assert.False(t, IsInsert(ret))
}

func TestIs_WithKind(t *testing.T) {
	embed := NewRetainEmbed(Embed{"image": "i.png"}, nil)
	assert.True(t, Is(embed, ActionRetain, KindEmbed))
	assert.True(t, Is(embed, ActionRetain, KindAny))
	assert.False(t, Is(embed, ActionRetain, KindInteger))
}

func TestHasAttributes(t *testing.T) {
	assert.False(t, HasAttributes(NewRetain(1, nil)))
	assert.True(t, HasAttributes(NewRetain(1, Attributes{"bold": true})))
}

func TestTake_Text(t *testing.T) {
	op := NewInsertText("Hello", Attributes{"bold": true})
	left, rest, indivisible := Take(op, 3)
	require.False(t, indivisible)
	assert.Equal(t, "Hel", left.Value)
	assert.Equal(t, "lo", rest.Value)
	assert.Equal(t, Attributes{"bold": true}, left.Attrs)
	assert.Equal(t, Attributes{"bold": true}, rest.Attrs)
}

func TestTake_Integer(t *testing.T) {
	op := NewRetain(10, nil)
	left, rest, indivisible := Take(op, 4)
	require.False(t, indivisible)
	assert.Equal(t, 4, left.Value)
	assert.Equal(t, 6, rest.Value)
}

func TestTake_EmbedWhole(t *testing.T) {
	op := NewRetainEmbed(Embed{"image": "i.png"}, nil)
	left, rest, indivisible := Take(op, 1)
	require.True(t, indivisible)
	assert.Equal(t, op, left)
	assert.Equal(t, 0, Size(rest))
}

func TestTake_EmbedZero(t *testing.T) {
	op := NewRetainEmbed(Embed{"image": "i.png"}, nil)
	left, rest, indivisible := Take(op, 0)
	require.False(t, indivisible)
	assert.Equal(t, 0, Size(left))
	assert.Equal(t, op, rest)
}

func TestTake_Overflow(t *testing.T) {
	op := NewRetain(3, nil)
	assert.PanicsWithValue(t, ErrTakeOverflow, func() {
		Take(op, 4)
	})
}
