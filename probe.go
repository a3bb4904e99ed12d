package rhtable

// findPosWithHint scans starting from bucket bid for key k, returning a
// bucketID. If bid's bucket is empty, the result is missing with pos set
// to where the key would be inserted (bid + its offset). Otherwise the
// bucket's payload range [bid+off(bid), bid+1+off(bid+1)) is scanned
// linearly; a match returns present, otherwise missing with pos set to
// the end of the range.
func (t *Table[K, V]) findPosWithHint(k K, bid int) bucketID {
	offInfo := t.info[bid]
	start := bid + offsetOf(offInfo)

	if isEmpty(offInfo) {
		return makeMissingBucketID(start)
	}

	end := bid + 1 + offsetOf(t.info[bid+1])

	reprobe := 0
	for i := start; i < end; i++ {
		if t.eq(k, t.data[i].key) {
			if t.statsEnabled {
				t.stats.recordReprobe(reprobe)
			}
			return makeExistingBucketID(i)
		}
		reprobe++
	}
	if t.statsEnabled {
		t.stats.recordReprobe(reprobe)
	}
	return makeMissingBucketID(end)
}

// findPos hashes k to its bucket and delegates to findPosWithHint.
func (t *Table[K, V]) findPos(k K) bucketID {
	bid := int(t.hash.Sum64(k) & uint64(t.mask))
	return t.findPosWithHint(k, bid)
}

// findNextEmptyPos advances from pos until it reaches a bucket whose
// metadata is exactly infoEmpty (empty, offset zero), skipping ahead by
// max(offset, 1) at each step since a nonempty offset bounds how many
// consecutive non-empty slots follow.
func (t *Table[K, V]) findNextEmptyPos(pos int) int {
	end := pos
	for end < len(t.info) && t.info[end] != infoEmpty {
		step := offsetOf(t.info[end])
		if step < 1 {
			step = 1
		}
		end += step
	}
	return end
}

// findNextZeroOffsetPos advances from pos, jumping by each bucket's
// offset, until it finds a bucket whose offset is exactly zero, the end
// of the region disturbed by a shift-insert or erase.
func (t *Table[K, V]) findNextZeroOffsetPos(pos int) int {
	end := pos
	for end < len(t.info) {
		d := offsetOf(t.info[end])
		if d == 0 {
			return end
		}
		end += d
	}
	return end
}
