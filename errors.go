package rhtable

import "errors"

// ErrInvalidLoadFactor is returned by NewTable/Option application when the
// configured minimum load factor is not strictly less than the maximum.
// Behavior in this case is a caller error, not defined by the core;
// construction fails rather than run with undefined thresholds.
var ErrInvalidLoadFactor = errors.New("rhtable: min load factor must be less than max load factor")

// ErrAlloc is the sentinel wrapped by allocation-failure errors returned
// from Reserve, Insert, and InsertStream. Use errors.Is(err,
// rhtable.ErrAlloc) to detect it independent of the specific allocation
// that failed.
var ErrAlloc = errors.New("rhtable: allocation failed")
