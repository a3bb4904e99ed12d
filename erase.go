package rhtable

import "unsafe"

// eraseAndCompact removes k, known to hash to bucket bid, from the table.
// Returns 1 if k was present (and removed), 0 otherwise. Grounded on the
// original source's erase_and_compact: locate the entry, find the end of
// the disturbed region via findNextZeroOffsetPos, shift the payload left
// by one, decrement offsets across the disturbed region, and mark bid
// empty if its range became empty.
func (t *Table[K, V]) eraseAndCompact(k K, bid int) int {
	found := t.findPosWithHint(k, bid)
	if found.missing() {
		return 0
	}

	pos := found.pos()
	pos1 := pos + 1
	bid1 := bid + 1

	end := t.findNextZeroOffsetPos(bid1)

	copy(t.data[pos:end-1], t.data[pos1:end])

	if offsetOf(t.info[bid]) == offsetOf(t.info[bid1]) {
		setEmpty(&t.info[bid])
	}

	for i := bid1; i < end; i++ {
		t.info[i]--
	}

	if t.statsEnabled {
		t.stats.recordShift(end - bid1)
		t.stats.recordMove(end - pos1)
	}

	t.size--
	return 1
}

// Erase removes k if present, returning 1 if it was removed or 0 if it
// was absent. If the resulting size drops below minLoad, the table
// downsizes to the next lower power of two, unless doing so would push
// some bucket's offset past maxOffset, in which case the table silently
// keeps its current capacity.
func (t *Table[K, V]) Erase(k K) (int, error) {
	bid := int(t.hash.Sum64(k) & uint64(t.mask))
	n := t.eraseAndCompact(k, bid)
	if n == 0 {
		return 0, nil
	}

	if t.size < t.minLoad && t.buckets > minBuckets {
		if err := t.rehash(t.buckets >> 1); err != nil {
			return n, err
		}
	}
	return n, nil
}

// EraseStream removes every key in keys, following the same prefetch
// discipline as InsertStream and FindStream, and returns the number
// removed. A single downsize check runs after the whole batch rather than
// after each key, since intermediate states below minLoad are not
// observable to the caller.
func (t *Table[K, V]) EraseStream(keys []K) (int, error) {
	n := len(keys)
	if n == 0 {
		return 0, nil
	}

	hashes := make([]uint64, n)
	for i, k := range keys {
		hashes[i] = t.hash.Sum64(k)
	}

	L := t.queryLookahead
	if L < 1 {
		L = 1
	}

	removed := 0
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
		removed += t.eraseAndCompact(keys[i], bid)
	}

	if t.size < t.minLoad && t.buckets > minBuckets {
		if err := t.rehash(t.buckets >> 1); err != nil {
			return removed, err
		}
	}
	return removed, nil
}
