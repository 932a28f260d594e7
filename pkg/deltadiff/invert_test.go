package deltadiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltaweave/deltaweave/pkg/delta"
)

func TestInvert_UndoesInsert(t *testing.T) {
	base := []delta.Op{delta.NewInsertText("Hello", nil)}
	change := []delta.Op{delta.NewRetain(5, nil), delta.NewInsertText(" World", nil)}

	inv, err := Invert(change, base, nil)
	require.NoError(t, err)

	assert.Equal(t, []delta.Op{delta.NewRetain(5, nil), delta.NewDelete(6, nil)}, inv)
}

func TestInvert_UndoesDeleteByReinsertingBaseContent(t *testing.T) {
	base := []delta.Op{delta.NewInsertText("Hello World", nil)}
	change := []delta.Op{delta.NewRetain(5, nil), delta.NewDelete(6, nil)}

	inv, err := Invert(change, base, nil)
	require.NoError(t, err)

	assert.Equal(t, []delta.Op{delta.NewRetain(5, nil), delta.NewInsertText(" World", nil)}, inv)
}

func TestInvert_UndoesAttributeChangeByRestoringBaseAttrs(t *testing.T) {
	base := []delta.Op{delta.NewInsertText("Hello", delta.Attributes{"bold": true})}
	change := []delta.Op{delta.NewRetain(5, delta.Attributes{"bold": delta.Null})}

	inv, err := Invert(change, base, nil)
	require.NoError(t, err)

	assert.Equal(t, []delta.Op{delta.NewRetain(5, delta.Attributes{"bold": true})}, inv)
}

func TestInvert_PlainRetainWithoutAttributesIsNoOp(t *testing.T) {
	base := []delta.Op{delta.NewInsertText("Hello", nil)}
	change := []delta.Op{delta.NewRetain(5, nil)}

	inv, err := Invert(change, base, nil)
	require.NoError(t, err)

	assert.Equal(t, []delta.Op{delta.NewRetain(5, nil)}, inv)
}

func TestInvert_RoundTripsThroughCompose(t *testing.T) {
	base := []delta.Op{delta.NewInsertText("Hello World", delta.Attributes{"bold": true})}
	change := []delta.Op{
		delta.NewRetain(6, delta.Attributes{"bold": delta.Null}),
		delta.NewDelete(5, nil),
		delta.NewInsertText("Gophers", nil),
	}

	applied, err := delta.Compose(base, change, nil)
	require.NoError(t, err)

	inv, err := Invert(change, base, nil)
	require.NoError(t, err)

	restored, err := delta.Compose(applied, inv, nil)
	require.NoError(t, err)

	assert.Equal(t, delta.Compact(base), delta.Compact(restored))
}

func TestInvert_UnknownEmbedTypeErrors(t *testing.T) {
	base := []delta.Op{delta.NewRetainEmbed(delta.Embed{"widget": "x"}, nil)}
	change := []delta.Op{delta.NewRetainEmbed(delta.Embed{"widget": "y"}, delta.Attributes{"align": "left"})}

	_, err := Invert(change, base, nil)
	require.Error(t, err)

	var target *delta.UnknownEmbedTypeError
	assert.ErrorAs(t, err, &target)
}
