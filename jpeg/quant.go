package jpeg

// zigzag[k] is the natural row-major index of the k-th coefficient in zigzag
// scan order (spec.md §4.4). Pre-computed, per spec.md §9 ("Zigzag table:
// pre-computed constant; do not derive at runtime").
var zigzag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10, 17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34, 27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36, 29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46, 53, 60, 61, 54, 47, 55, 62, 63,
}

// quantTable is a destination-indexed quantization table, stored in natural
// (not zigzag) order so dequantize can index it directly alongside a block
// that has already had its coefficients unscrambled from zigzag order.
type quantTable struct {
	values  [64]int32
	defined bool
}

// dequantize multiplies each of a block's 64 natural-order coefficients by
// the corresponding quantization table entry (spec.md §4.6).
func dequantize(block *[64]int32, q *quantTable) {
	for k := 0; k < 64; k++ {
		block[k] *= q.values[k]
	}
}
