package jpeg

import "golang.org/x/exp/constraints"

// clamp restricts v to [lo, hi]. Generic per SPEC_FULL's decision to wire
// golang.org/x/exp/constraints here rather than hand-roll a byte-only clamp
// the way the teacher's (undefined-in-pack) common.Clamp implied.
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// levelShiftClamp adds the +128 level shift and clamps to [0, 255] (spec.md
// §4.7/§4.9: the shift happens here, during color conversion, not in the
// IDCT). Applied uniformly to grayscale and to each of Y, Cb, Cr before
// the YCbCr->RGB matrix, matching Open Question (d): the reference applies
// level-shift and clamp even for grayscale.
func levelShiftClamp(sample int16) byte {
	return byte(clamp(int(sample)+128, 0, 255))
}

// ycbcrToRGB converts one already level-shifted, clamped YCbCr triple to RGB
// (spec.md §4.9). Constants are the teacher's fixed-point scaling of the
// ITU-R BT.601 coefficients (1.402, 0.344136, 0.714136, 1.772, each times
// 2^16), rounded to nearest rather than truncated.
func ycbcrToRGB(y, cb, cr byte) (r, g, b byte) {
	yy := int32(y)
	cbv := int32(cb) - 128
	crv := int32(cr) - 128

	const half = 1 << 15
	rr := yy + (91881*crv+half)>>16
	gg := yy - (22554*cbv+46802*crv+half)>>16
	bb := yy + (116130*cbv+half)>>16

	return byte(clamp(int(rr), 0, 255)),
		byte(clamp(int(gg), 0, 255)),
		byte(clamp(int(bb), 0, 255))
}
