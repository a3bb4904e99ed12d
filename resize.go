package rhtable

// nextPowerOfTwo returns the smallest power of two >= n (n > 0).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// bucketsForCapacity returns the smallest power-of-two bucket count whose
// maxLoadFactor-scaled capacity is at least n.
func bucketsForCapacity(n int, maxLoadFactor float64) int {
	if n <= 0 {
		return minBuckets
	}
	b := nextPowerOfTwo(n)
	for float64(b)*maxLoadFactor < float64(n) {
		b <<= 1
	}
	return b
}

// Reserve ensures the table's capacity is at least n / maxLoadFactor,
// rounded up to a power of two. It never shrinks the table; use Clear or
// let Erase's automatic downsize handle that.
func (t *Table[K, V]) Reserve(n int) error {
	target := bucketsForCapacity(n, t.maxLoadFactor)
	if target <= t.buckets {
		return nil
	}
	return t.rehash(target)
}

// rehash resizes the table to requested buckets (rounded up to a power of
// two), dispatching to copyUpsize or copyDownsize. A downsize that would
// force some bucket's offset past maxOffset is silently refused: the
// table keeps its current capacity and the caller is never told the
// shrink failed. rehash is also a no-op if the requested size cannot hold
// the table's current size under maxLoadFactor.
func (t *Table[K, V]) rehash(requested int) error {
	n := nextPowerOfTwo(requested)
	if n < minBuckets {
		n = minBuckets
	}
	if n == t.buckets {
		return nil
	}
	if float64(t.size) >= t.maxLoadFactor*float64(n) {
		return nil
	}

	if t.size > 0 && n < t.buckets {
		for t.copyDownsizeMaxOffset(n) > maxOffset {
			n <<= 1
		}
	}
	if n == t.buckets {
		return nil
	}

	if n < t.buckets {
		if err := t.copyDownsize(n); err != nil {
			return err
		}
		if t.statsEnabled {
			t.stats.DownsizeCount++
		}
		return nil
	}

	if err := t.copyUpsize(n); err != nil {
		return err
	}
	if t.statsEnabled {
		t.stats.UpsizeCount++
	}
	return nil
}

// copyDownsizeMaxOffset computes, without mutating the table, the largest
// offset a downsize to targetBuckets would require. The caller aborts the
// downsize (and doubles targetBuckets) if this exceeds maxOffset.
func (t *Table[K, V]) copyDownsizeMaxOffset(targetBuckets int) int {
	if targetBuckets > t.buckets {
		return 0
	}
	blocks := t.buckets / targetBuckets

	maxOff := 0
	newEnd := 0
	for bid := 0; bid < targetBuckets; bid++ {
		newStart := bid
		if newEnd > newStart {
			newStart = newEnd
		}
		newEnd = newStart

		for bl := 0; bl < blocks; bl++ {
			id := bid + bl*targetBuckets
			if isNormal(t.info[id]) {
				newEnd += 1 + offsetOf(t.info[id+1]) - offsetOf(t.info[id])
			}
		}

		if d := newStart - bid; d > maxOff {
			maxOff = d
		}
		if maxOff > maxOffset {
			return maxOff
		}
	}
	if d := newEnd - targetBuckets; d > maxOff {
		maxOff = d
	}
	return maxOff
}

// copyDownsize rebuilds the table at targetBuckets, concatenating each
// group of buckets/targetBuckets old buckets into one new bucket.
func (t *Table[K, V]) copyDownsize(targetBuckets int) error {
	blocks := t.buckets / targetBuckets

	newInfoRaw, newInfo, err := newEmptyInfoSlice(targetBuckets + tailPad)
	if err != nil {
		return err
	}
	newDataRaw, newData, err := newAligned[entry[K, V]](targetBuckets + tailPad)
	if err != nil {
		return err
	}

	newEnd := 0
	for bid := 0; bid < targetBuckets; bid++ {
		newStart := bid
		if newEnd > newStart {
			newStart = newEnd
		}
		newEnd = newStart

		for bl := 0; bl < blocks; bl++ {
			id := bid + bl*targetBuckets
			if !isNormal(t.info[id]) {
				continue
			}
			pos := id + offsetOf(t.info[id])
			end := id + 1 + offsetOf(t.info[id+1])
			copy(newData[newEnd:newEnd+(end-pos)], t.data[pos:end])
			newEnd += end - pos
		}

		width := newEnd - newStart
		if width == 0 {
			newInfo[bid] = infoEmpty | infoType(newStart-bid)
		} else {
			newInfo[bid] = infoType(newStart - bid)
		}
	}

	for bid := targetBuckets; bid < newEnd; bid++ {
		newInfo[bid] = infoEmpty | infoType(newEnd-bid)
	}

	t.infoRaw, t.info = newInfoRaw, newInfo
	t.dataRaw, t.data = newDataRaw, newData
	t.buckets = targetBuckets
	t.mask = targetBuckets - 1
	t.minLoad = int(float64(targetBuckets) * t.minLoadFactor)
	t.maxLoad = int(float64(targetBuckets) * t.maxLoadFactor)
	return nil
}

// copyUpsize rebuilds the table at targetBuckets (a multiple of the
// current bucket count). Each old bucket's entries scatter across
// targetBuckets/buckets possible destination buckets, exactly one of
// {bid, bid+buckets, bid+2*buckets, ...} per entry, since the new mask's
// low bits are the old mask's bits, so destination mod oldBuckets always
// equals bid. A first pass computes, per destination block, the floor an
// earlier block's Robin Hood overflow imposes on the next block's start
// (entries can spill past their nominal bucket boundary); a second pass
// places entries using that floor exactly like copyDownsize's running
// fill pointer, replicated once per block.
func (t *Table[K, V]) copyUpsize(targetBuckets int) error {
	oldBuckets := t.buckets
	blocks := targetBuckets / oldBuckets
	m := targetBuckets - 1

	newInfoRaw, newInfo, err := newEmptyInfoSlice(targetBuckets + tailPad)
	if err != nil {
		return err
	}
	newDataRaw, newData, err := newAligned[entry[K, V]](targetBuckets + tailPad)
	if err != nil {
		return err
	}

	hashes := make([]uint64, t.size)
	offsets := make([]int, blocks+1)
	lens := make([]int, blocks)
	counts := make([]int, blocks)

	j := 0
	for bid := 0; bid < oldBuckets; bid++ {
		if !isNormal(t.info[bid]) {
			continue
		}
		pos := bid + offsetOf(t.info[bid])
		end := bid + 1 + offsetOf(t.info[bid+1])
		for p := pos; p < end; p++ {
			h := t.hash.Sum64(t.data[p].key)
			hashes[j] = h
			id := int(h & uint64(m))
			bl := id / oldBuckets
			// running fill end of block bl as if nothing spilled into it
			if id > offsets[bl+1] {
				offsets[bl+1] = id
			}
			offsets[bl+1]++
			counts[bl]++
			j++
		}
	}
	// chain the blocks: a block that starts late because of the previous
	// block's spill also ends at least counts[bl] slots after that start.
	for bl := 0; bl < blocks; bl++ {
		if f := offsets[bl] + counts[bl]; f > offsets[bl+1] {
			offsets[bl+1] = f
		}
	}

	j = 0
	for bid := 0; bid < oldBuckets; bid++ {
		if !isNormal(t.info[bid]) {
			for bl := 0; bl < blocks; bl++ {
				id := bid + bl*oldBuckets
				newStart := id
				if offsets[bl] > newStart {
					newStart = offsets[bl]
				}
				newInfo[id] = infoEmpty | infoType(newStart-id)
			}
			continue
		}

		pos := bid + offsetOf(t.info[bid])
		end := bid + 1 + offsetOf(t.info[bid+1])
		for i := range lens {
			lens[i] = 0
		}

		for p := pos; p < end; p++ {
			h := hashes[j]
			id := int(h & uint64(m))
			bl := id / oldBuckets
			pp := id
			if offsets[bl] > pp {
				pp = offsets[bl]
			}
			newData[pp] = t.data[p]
			offsets[bl] = pp + 1
			lens[bl]++
			j++
		}

		for bl := 0; bl < blocks; bl++ {
			id := bid + bl*oldBuckets
			newStart := id
			if offsets[bl] > newStart {
				newStart = offsets[bl]
			}
			off := newStart - id - lens[bl]
			if lens[bl] == 0 {
				newInfo[id] = infoEmpty | infoType(off)
			} else {
				newInfo[id] = infoType(off)
			}
		}
	}

	for bid := targetBuckets; bid < offsets[blocks]; bid++ {
		newStart := bid
		if offsets[blocks] > newStart {
			newStart = offsets[blocks]
		}
		newInfo[bid] = infoEmpty | infoType(newStart-bid)
	}

	t.infoRaw, t.info = newInfoRaw, newInfo
	t.dataRaw, t.data = newDataRaw, newData
	t.buckets = targetBuckets
	t.mask = targetBuckets - 1
	t.minLoad = int(float64(targetBuckets) * t.minLoadFactor)
	t.maxLoad = int(float64(targetBuckets) * t.maxLoadFactor)
	return nil
}
