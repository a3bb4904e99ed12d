package rhtable

// infoType is the one-byte-per-bucket metadata entry. The high bit marks
// the bucket empty (though it may still carry a nonzero offset, recording
// where a later bucket's entries were shifted through it); the low seven
// bits give the offset from this bucket's index to the first payload slot
// belonging to it.
type infoType uint8

const (
	infoEmpty infoType = 0x80
	infoMask  infoType = 0x7F

	// maxOffset is the largest representable offset. A required offset
	// beyond this value forces a resize.
	maxOffset = int(infoMask)

	// tailPad is the number of extra metadata/payload slots appended
	// beyond the B logical buckets, sized to the maximum representable
	// offset so that probes starting near the end of the table never
	// walk off the end of the arrays.
	tailPad = maxOffset + 1
)

func isEmpty(x infoType) bool  { return x >= infoEmpty }
func isNormal(x infoType) bool { return x < infoEmpty }

func setEmpty(x *infoType)  { *x |= infoEmpty }
func setNormal(x *infoType) { *x &= infoMask }

func offsetOf(x infoType) int { return int(x & infoMask) }

// newEmptyInfoSlice allocates an aligned, all-empty metadata array of
// length n.
func newEmptyInfoSlice(n int) (raw []byte, s []infoType, err error) {
	raw, s, err = newAligned[infoType](n)
	if err != nil {
		return nil, nil, err
	}
	for i := range s {
		s[i] = infoEmpty
	}
	return raw, s, nil
}
