package deltawire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltaweave/deltaweave/pkg/delta"
)

func TestMarshalDelta_PlainTextInsert(t *testing.T) {
	ops := []delta.Op{delta.NewInsertText("Hello", nil)}

	got, err := MarshalDelta(ops)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ops":[{"insert":"Hello"}]}`, string(got))
}

func TestMarshalDelta_AttributesIncluded(t *testing.T) {
	ops := []delta.Op{delta.NewInsertText("Hi", delta.Attributes{"bold": true})}

	got, err := MarshalDelta(ops)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ops":[{"insert":"Hi","attributes":{"bold":true}}]}`, string(got))
}

func TestMarshalDelta_NullAttributeBecomesJSONNull(t *testing.T) {
	ops := []delta.Op{delta.NewRetain(3, delta.Attributes{"bold": delta.Null})}

	got, err := MarshalDelta(ops)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ops":[{"retain":3,"attributes":{"bold":null}}]}`, string(got))
}

func TestMarshalDelta_DeleteHasNoAttributesField(t *testing.T) {
	ops := []delta.Op{delta.NewDelete(4, nil)}

	got, err := MarshalDelta(ops)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ops":[{"delete":4}]}`, string(got))
}

func TestMarshalDelta_ImageEmbed(t *testing.T) {
	ops := []delta.Op{delta.NewInsertEmbed(delta.Embed{"image": "a.png"}, nil)}

	got, err := MarshalDelta(ops)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ops":[{"insert":{"image":"a.png"}}]}`, string(got))
}

func TestUnmarshalDelta_RoundTripsPlainTextAndAttributes(t *testing.T) {
	input := `{"ops":[{"insert":"Hello","attributes":{"bold":true}},{"retain":5},{"delete":2}]}`

	ops, err := UnmarshalDelta([]byte(input))
	require.NoError(t, err)
	require.Len(t, ops, 3)

	assert.Equal(t, delta.NewInsertText("Hello", delta.Attributes{"bold": true}), ops[0])
	assert.Equal(t, delta.NewRetain(5, nil), ops[1])
	assert.Equal(t, delta.NewDelete(2, nil), ops[2])
}

func TestUnmarshalDelta_NullAttributeBecomesNullSentinel(t *testing.T) {
	input := `{"ops":[{"retain":3,"attributes":{"bold":null}}]}`

	ops, err := UnmarshalDelta([]byte(input))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	assert.True(t, delta.IsNull(ops[0].Attrs["bold"]))
}

func TestUnmarshalDelta_ImageEmbed(t *testing.T) {
	input := `{"ops":[{"insert":{"image":"a.png"}}]}`

	ops, err := UnmarshalDelta([]byte(input))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	assert.Equal(t, delta.Embed{"image": "a.png"}, ops[0].Value)
}

func TestUnmarshalDelta_RetainEmbed(t *testing.T) {
	input := `{"ops":[{"retain":{"image":"a.png"},"attributes":{"align":"left"}}]}`

	ops, err := UnmarshalDelta([]byte(input))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	assert.True(t, delta.IsRetain(ops[0]))
	assert.Equal(t, delta.Embed{"image": "a.png"}, ops[0].Value)
	assert.Equal(t, delta.Attributes{"align": "left"}, ops[0].Attrs)
}

func TestDeltaEmbedRoundTripsRecursively(t *testing.T) {
	nested := delta.Delta{delta.NewInsertText("nested", nil)}
	ops := []delta.Op{delta.NewInsertEmbed(delta.Embed{"delta": nested}, nil)}

	raw, err := MarshalDelta(ops)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ops":[{"insert":{"delta":{"ops":[{"insert":"nested"}]}}}]}`, string(raw))

	got, err := UnmarshalDelta(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)

	embed, ok := got[0].Value.(delta.Embed)
	require.True(t, ok)
	nestedOps, ok := embed.Value().(delta.Delta)
	require.True(t, ok)
	assert.Equal(t, nested, nestedOps)
}

func TestMarshalOp_SingleOp(t *testing.T) {
	raw, err := MarshalOp(delta.NewInsertText("x", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"insert":"x"}`, string(raw))
}

func TestUnmarshalOp_RejectsOpWithNoAction(t *testing.T) {
	_, err := UnmarshalOp([]byte(`{"attributes":{"bold":true}}`))
	assert.Error(t, err)
}

func TestUnmarshalDelta_RejectsNegativeDelete(t *testing.T) {
	_, err := UnmarshalDelta([]byte(`{"ops":[{"delete":-5}]}`))
	assert.Error(t, err)
}

func TestUnmarshalDelta_RejectsNegativeRetain(t *testing.T) {
	_, err := UnmarshalDelta([]byte(`{"ops":[{"retain":-3}]}`))
	assert.Error(t, err)
}

func TestUnmarshalDelta_RejectsEmptyInsertWithAttributes(t *testing.T) {
	_, err := UnmarshalDelta([]byte(`{"ops":[{"insert":"","attributes":{"bold":true}}]}`))
	assert.Error(t, err)
}
