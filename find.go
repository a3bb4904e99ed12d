package rhtable

import "unsafe"

// Find returns the value stored for k and whether it was present.
func (t *Table[K, V]) Find(k K) (V, bool) {
	found := t.findPos(k)
	if found.missing() {
		var zero V
		return zero, false
	}
	return t.data[found.pos()].value, true
}

// Exists reports whether k is present. This is a map, not a multimap, so
// the result is always 0 or 1 occurrences.
func (t *Table[K, V]) Exists(k K) bool {
	return t.findPos(k).present()
}

// Count returns 1 if k is present, 0 otherwise.
func (t *Table[K, V]) Count(k K) int {
	if t.Exists(k) {
		return 1
	}
	return 0
}

// FindStream looks up every key in keys, following the same look-ahead
// prefetch discipline as InsertStream, and returns a parallel slice of
// (value, found) results.
func (t *Table[K, V]) FindStream(keys []K) []struct {
	Value V
	Found bool
} {
	n := len(keys)
	out := make([]struct {
		Value V
		Found bool
	}, n)
	if n == 0 {
		return out
	}

	hashes := make([]uint64, n)
	for i, k := range keys {
		hashes[i] = t.hash.Sum64(k)
	}

	L := t.queryLookahead
	if L < 1 {
		L = 1
	}

	for i := 0; i < n; i++ {
		if j := i + 2*L; j < n {
			_ = *(*uint64)(unsafe.Pointer(&hashes[j]))
			_ = *(*K)(unsafe.Pointer(&keys[j]))
		}
		if j := i + L; j < n {
			bid := int(hashes[j] & uint64(t.mask))
			touchInfo(t, bid)
			touchData(t, bid)
		}

		bid := int(hashes[i] & uint64(t.mask))
		found := t.findPosWithHint(keys[i], bid)
		if found.present() {
			out[i].Value = t.data[found.pos()].value
			out[i].Found = true
		}
	}
	return out
}

// CountStream returns, for each key in keys, 1 if present or 0 if absent.
func (t *Table[K, V]) CountStream(keys []K) []int {
	results := t.FindStream(keys)
	out := make([]int, len(results))
	for i, r := range results {
		if r.Found {
			out[i] = 1
		}
	}
	return out
}
