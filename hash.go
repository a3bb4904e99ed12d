package rhtable

import (
	"unsafe"

	"github.com/dolthub/maphash"
	"github.com/klauspost/cpuid/v2"
	"github.com/zeebo/xxh3"
)

// Hash is the capability the table consumes to turn a key into a 64-bit
// hash. It is deliberately external: the table never knows or cares how a
// key's hash is computed, only that Sum64 is deterministic and reasonably
// well distributed.
type Hash[K any] interface {
	Sum64(k K) uint64
}

// RuntimeHasher is the default Hash[K] for any comparable K. It borrows
// Go's own runtime map hash function via dolthub/maphash. The seed is
// drawn once at construction and held fixed for the table's lifetime: the
// offset table's resize is a bit-split rehash that places every entry by
// hash(k)&mask using the current seed, and findPos later recomputes
// hash(k)&mask to locate it, so the seed must stay invariant or every key
// already in the table becomes unfindable the moment it changes.
type RuntimeHasher[K comparable] struct {
	h maphash.Hasher[K]
}

// NewRuntimeHasher constructs a RuntimeHasher with a random seed.
func NewRuntimeHasher[K comparable]() RuntimeHasher[K] {
	return RuntimeHasher[K]{h: maphash.NewHasher[K]()}
}

func (r RuntimeHasher[K]) Sum64(k K) uint64 { return r.h.Hash(k) }

// XXH3Hasher hashes the raw bytes of a fixed-size, pointer-free K using
// xxh3. It is the portable fallback used when the host CPU lacks the
// AES-NI instructions the runtime map hasher wants. Package kmer's own
// Hasher computes the same kind of xxh3 hash over a Kmer's raw bytes.
type XXH3Hasher[K comparable] struct{}

func (XXH3Hasher[K]) Sum64(k K) uint64 {
	var zero K
	sz := unsafe.Sizeof(zero)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&k)), sz)
	return xxh3.Hash(b)
}

// defaultHash picks RuntimeHasher when the host supports AES-NI (the case
// the Go runtime's own map hash is optimized for) and XXH3Hasher otherwise,
// so a table built with NewTable's zero-value options still gets a
// reasonable, portable hash on every platform in the fleet.
func defaultHash[K comparable]() Hash[K] {
	if cpuid.CPU.Supports(cpuid.AESNI) {
		return NewRuntimeHasher[K]()
	}
	return XXH3Hasher[K]{}
}
