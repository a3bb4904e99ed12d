package rhtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoBitPacking(t *testing.T) {
	t.Run("emptyFlag", func(t *testing.T) {
		var x infoType
		assert.False(t, isEmpty(x))
		assert.True(t, isNormal(x))
		setEmpty(&x)
		assert.True(t, isEmpty(x))
		assert.False(t, isNormal(x))
		setNormal(&x)
		assert.True(t, isNormal(x))
	})

	t.Run("offsetSurvivesEmptyToggle", func(t *testing.T) {
		x := infoType(5)
		assert.Equal(t, 5, offsetOf(x))
		setEmpty(&x)
		assert.Equal(t, 5, offsetOf(x))
		assert.True(t, isEmpty(x))
		setNormal(&x)
		assert.Equal(t, 5, offsetOf(x))
		assert.True(t, isNormal(x))
	})

	t.Run("maxOffsetFitsSevenBits", func(t *testing.T) {
		assert.Equal(t, 127, maxOffset)
		assert.Equal(t, 128, tailPad)
	})
}

func TestNewEmptyInfoSlice(t *testing.T) {
	_, s, err := newEmptyInfoSlice(16)
	assert.NoError(t, err)
	assert.Len(t, s, 16)
	for _, x := range s {
		assert.True(t, isEmpty(x))
		assert.Equal(t, 0, offsetOf(x))
	}
}

func TestBucketIDRoundTrip(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		id := makeMissingBucketID(42)
		assert.True(t, id.missing())
		assert.False(t, id.present())
		assert.Equal(t, 42, id.pos())
	})
	t.Run("existing", func(t *testing.T) {
		id := makeExistingBucketID(42)
		assert.True(t, id.present())
		assert.False(t, id.missing())
		assert.Equal(t, 42, id.pos())
	})
	t.Run("insertFailedIsMissing", func(t *testing.T) {
		assert.True(t, insertFailed.missing())
	})
}
