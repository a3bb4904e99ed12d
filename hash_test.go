package rhtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeHasherDeterministic(t *testing.T) {
	h := NewRuntimeHasher[int]()
	a := h.Sum64(42)
	b := h.Sum64(42)
	assert.Equal(t, a, b)
}

func TestRuntimeHasherIndependentSeedsDiffer(t *testing.T) {
	h1 := NewRuntimeHasher[int]()
	h2 := NewRuntimeHasher[int]()

	differs := false
	for i := 0; i < 64; i++ {
		if h1.Sum64(i) != h2.Sum64(i) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "two independently seeded hashers should disagree on at least one of 64 keys")
}

func TestXXH3HasherDeterministic(t *testing.T) {
	var h XXH3Hasher[int64]
	a := h.Sum64(123456789)
	b := h.Sum64(123456789)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, h.Sum64(987654321))
}

func TestDefaultHashIsUsable(t *testing.T) {
	h := defaultHash[string]()
	a := h.Sum64("hello")
	b := h.Sum64("hello")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, h.Sum64("world"))
}
