package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbed_TypeAndValue(t *testing.T) {
	e := Embed{"image": "i.png"}
	assert.Equal(t, "image", e.Type())
	assert.Equal(t, "i.png", e.Value())
	assert.True(t, e.valid())
}

func TestEmbed_InvalidShape(t *testing.T) {
	empty := Embed{}
	assert.Equal(t, "", empty.Type())
	assert.False(t, empty.valid())

	multi := Embed{"image": "i.png", "video": "v.mp4"}
	assert.False(t, multi.valid())
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(Null))
	assert.False(t, IsNull(nil))
	assert.False(t, IsNull("null"))
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "insert", ActionInsert.String())
	assert.Equal(t, "retain", ActionRetain.String())
	assert.Equal(t, "delete", ActionDelete.String())
}
