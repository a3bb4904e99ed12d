// Package kmer provides a fixed-width, 2-bit-packed nucleotide k-mer key
// type for use as the K parameter of rhtable.Table: a trivially movable,
// hashable, equality-comparable value type the table never needs to know
// anything about beyond those three properties.
package kmer

import (
	"fmt"
	"unsafe"

	"github.com/zeebo/xxh3"
)

// Kmer is a 2-bit-packed nucleotide sequence of up to 64 bases, stored
// as two uint64 words (low word first). Packing at 2 bits/base keeps the
// type's size fixed regardless of k, the property rhtable's core
// requires of every key.
type Kmer [2]uint64

var baseCode = [256]int8{}

func init() {
	for i := range baseCode {
		baseCode[i] = -1
	}
	baseCode['A'], baseCode['a'] = 0, 0
	baseCode['C'], baseCode['c'] = 1, 1
	baseCode['G'], baseCode['g'] = 2, 2
	baseCode['T'], baseCode['t'] = 3, 3
}

var baseChar = [4]byte{'A', 'C', 'G', 'T'}

// New packs the first k bases of seq (k <= 64) into a Kmer. Returns an
// error if seq is shorter than k or contains a byte other than
// A/C/G/T (upper or lower case).
func New(seq string, k int) (Kmer, error) {
	var out Kmer
	if k <= 0 || k > 64 {
		return out, fmt.Errorf("kmer: k=%d out of range [1,64]", k)
	}
	if len(seq) < k {
		return out, fmt.Errorf("kmer: sequence shorter than k=%d", k)
	}
	for i := 0; i < k; i++ {
		code := baseCode[seq[i]]
		if code < 0 {
			return out, fmt.Errorf("kmer: invalid base %q at position %d", seq[i], i)
		}
		bitPos := i * 2
		word := bitPos / 64
		shift := uint(bitPos % 64)
		out[word] |= uint64(code) << shift
	}
	return out, nil
}

// String reconstructs the k-base sequence packed into a Kmer. Since a
// Kmer carries no length, the caller supplies k.
func (km Kmer) String(k int) string {
	b := make([]byte, k)
	for i := 0; i < k; i++ {
		bitPos := i * 2
		word := bitPos / 64
		shift := uint(bitPos % 64)
		code := (km[word] >> shift) & 0x3
		b[i] = baseChar[code]
	}
	return string(b)
}

// Equal reports whether km and other encode the same packed bases.
func (km Kmer) Equal(other Kmer) bool { return km == other }

// Hash64 hashes the Kmer's raw 16 bytes with xxh3, giving rhtable.Table a
// Hash[Kmer] without allocating: the table's default hash already falls
// back to an XXH3Hasher for any comparable key when the host lacks
// AES-NI, but a k-mer-specific hasher lets callers skip the CPU feature
// probe entirely when they know their workload is k-mer counting.
func (km Kmer) Hash64() uint64 {
	b := unsafe.Slice((*byte)(unsafe.Pointer(&km)), unsafe.Sizeof(km))
	return xxh3.Hash(b)
}

// Hasher adapts Kmer.Hash64 to rhtable.Hash[Kmer].
type Hasher struct{}

func (Hasher) Sum64(km Kmer) uint64 { return km.Hash64() }
