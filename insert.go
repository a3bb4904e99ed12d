package rhtable

import "unsafe"

// insertWithHint inserts (k, v) at bucket id, or applies the table's
// reducer if k is already present in id's bucket. Returns insertFailed if
// completing the shift-insert would push some bucket's offset past
// maxOffset; the caller must upsize and retry in that case. The reducer
// is applied at the matched payload index i, never at the caller's input
// index.
func (t *Table[K, V]) insertWithHint(id int, v entry[K, V]) bucketID {
	info := t.info[id]

	if info == infoEmpty {
		setNormal(&t.info[id])
		t.data[id] = v
		return makeMissingBucketID(id)
	}

	start := id + offsetOf(info)
	next := id + 1 + offsetOf(t.info[id+1])

	if isNormal(info) {
		reprobe := 0
		for i := start; i < next; i++ {
			if t.eq(v.key, t.data[i].key) {
				if t.statsEnabled {
					t.stats.recordReprobe(reprobe)
				}
				if !isDiscardReducer[V](t.reducer) {
					t.data[i].value = t.reducer.Combine(t.data[i].value, v.value)
				}
				return makeExistingBucketID(i)
			}
			reprobe++
		}
		if t.statsEnabled {
			t.stats.recordReprobe(reprobe)
		}
	}

	// Shift-insert: scan forward from id+1 to the next empty slot, then
	// bump every offset along the way by one. Abort if any offset would
	// overflow.
	end := t.findNextEmptyPos(id + 1)
	if end >= len(t.info) {
		return insertFailed
	}
	for i := id + 1; i <= end; i++ {
		if offsetOf(t.info[i]) == maxOffset {
			return insertFailed
		}
	}

	setNormal(&t.info[id])
	for i := id + 1; i <= end; i++ {
		t.info[i]++
	}

	copy(t.data[next+1:end+1], t.data[next:end])
	t.data[next] = v

	if t.statsEnabled {
		t.stats.recordShift(end - id)
		t.stats.recordMove(end - next)
	}

	return makeMissingBucketID(next)
}

// Insert inserts (k, v), applying the table's reducer if k is already
// present. Returns the payload index the key now occupies and whether the
// key was newly inserted (false means the reducer combined with an
// existing entry). Triggers an upsize (and retries) if the shift-insert
// would overflow an offset, or if the table is at its max load.
func (t *Table[K, V]) Insert(k K, v V) (idx int, inserted bool, err error) {
	if t.size >= t.maxLoad {
		if err := t.rehash(t.buckets << 1); err != nil {
			return 0, false, err
		}
	}

	for {
		bid := int(t.hash.Sum64(k) & uint64(t.mask))
		bid128 := t.insertWithHint(bid, entry[K, V]{key: k, value: v})
		if bid128 == insertFailed {
			if err := t.rehash(t.buckets << 1); err != nil {
				return 0, false, err
			}
			continue
		}
		inserted = bid128.missing()
		if inserted {
			t.size++
			t.hll.Update(t.hash.Sum64(k))
		}
		return bid128.pos(), inserted, nil
	}
}

// touch performs a pseudo software-prefetch: it dereferences the element
// at index i without using the result, forcing the runtime to fault the
// backing cache line into L1 ahead of when the value is actually needed.
// Go has no prefetch intrinsic; this touch-and-discard idiom is the
// established substitute.
func touchInfo[K comparable, V any](t *Table[K, V], i int) {
	if i < 0 || i >= len(t.info) {
		return
	}
	_ = *(*infoType)(unsafe.Pointer(&t.info[i]))
}

func touchData[K comparable, V any](t *Table[K, V], i int) {
	if i < 0 || i >= len(t.data) {
		return
	}
	_ = *(*entry[K, V])(unsafe.Pointer(&t.data[i]))
}

// InsertStream bulk-inserts every (key, value) pair in kvs. It precomputes
// and stores every hash in a single pass (also feeding a local HLL), uses
// the combined estimate to Reserve capacity up front, and then runs a
// look-ahead prefetch loop: at iteration i it prefetches the hash/input
// pair at i+2L and the metadata/payload at hash[i+L]&mask, while
// inserting item i.
func (t *Table[K, V]) InsertStream(kvs []Entry[K, V]) error {
	n := len(kvs)
	if n == 0 {
		return nil
	}

	hashes := make([]uint64, n)
	var localHLL HLL
	for i, kv := range kvs {
		h := t.hash.Sum64(kv.Key)
		hashes[i] = h
		localHLL.Update(h)
	}

	t.hll.Merge(&localHLL)
	if err := t.Reserve(int(t.hll.Estimate())); err != nil {
		return err
	}

	L := t.insertLookahead
	if L < 1 {
		L = 1
	}

	for i := 0; i < n; i++ {
		if t.size >= t.maxLoad {
			if err := t.rehash(t.buckets << 1); err != nil {
				return err
			}
		}

		if j := i + 2*L; j < n {
			_ = *(*uint64)(unsafe.Pointer(&hashes[j]))
			_ = *(*Entry[K, V])(unsafe.Pointer(&kvs[j]))
		}
		if j := i + L; j < n {
			bid := int(hashes[j] & uint64(t.mask))
			touchInfo(t, bid)
			touchData(t, bid)
		}

		bid := int(hashes[i] & uint64(t.mask))
		v := entry[K, V]{key: kvs[i].Key, value: kvs[i].Value}
		res := t.insertWithHint(bid, v)
		for res == insertFailed {
			if err := t.rehash(t.buckets << 1); err != nil {
				return err
			}
			bid = int(hashes[i] & uint64(t.mask))
			res = t.insertWithHint(bid, v)
		}
		if res.missing() {
			t.size++
		}
	}
	return nil
}
