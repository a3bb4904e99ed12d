// Package rhtable implements an open-addressing hash table using Robin Hood
// hashing with per-bucket offset metadata, as used in the hot path of
// k-mer counting pipelines where billions of fixed-width keys are inserted,
// queried, and occasionally erased.
//
// The table stores two parallel arrays: a one-byte-per-bucket metadata
// array (empty flag + offset to the bucket's first payload slot) and a
// payload array of key/value pairs. Robin Hood displacement during insert
// keeps entries for a bucket packed contiguously, so lookup only ever
// needs to consult the metadata at the target bucket and the next one to
// know exactly which payload slots belong to it.
//
// The table is not internally synchronized. Concurrent use requires
// external exclusion. Iteration order is payload-array order, which is
// neither insertion order nor key order, and is not stable across
// mutation.
package rhtable
