package jpeg

// HuffmanTable holds one DC or AC Huffman decode table: the per-length code
// counts and symbol values read from a DHT segment, plus the mincode/maxcode/
// valptr arrays T.81 Annex C derives from them.
type HuffmanTable struct {
	// Bits[i] is the number of codes of length i+1 (i.e. Bits[0] is length 1).
	Bits [16]int
	// Values holds the symbol values, concatenated in order of code length.
	Values []byte

	minCode [16]int32
	maxCode [16]int32 // -1 (ABSENT) where Bits[i] == 0
	valPtr  [16]int32
}

// Build derives minCode/maxCode/valPtr from Bits and Values (T.81 Annex C,
// spec.md §4.2). It reports a TableError if Σ Bits[i] != len(Values).
func (h *HuffmanTable) Build() error {
	total := 0
	for _, n := range h.Bits {
		total += n
	}
	if total != len(h.Values) {
		return &TableError{Cause: errHuffmanCountMismatch}
	}

	code := int32(0)
	p := 0
	for l := 0; l < 16; l++ {
		if h.Bits[l] == 0 {
			h.maxCode[l] = -1
		} else {
			h.valPtr[l] = int32(p)
			h.minCode[l] = code
			p += h.Bits[l]
			code += int32(h.Bits[l])
			h.maxCode[l] = code - 1
		}
		code <<= 1
	}
	return nil
}

// Decode reads one Huffman symbol from br, following spec.md §4.3 exactly:
// grow the candidate code one bit at a time until it falls within
// [minCode[i], maxCode[i]] for some present length i, or fail past 16 bits.
func (h *HuffmanTable) Decode(br *BitReader) (byte, error) {
	bit, ok := br.NextBit()
	if !ok {
		return 0, &BitstreamError{Cause: errBitstreamEOF}
	}
	code := int32(bit)

	for i := 0; i < 16; i++ {
		if h.maxCode[i] >= 0 && code <= h.maxCode[i] {
			idx := h.valPtr[i] + code - h.minCode[i]
			if idx < 0 || int(idx) >= len(h.Values) {
				return 0, &BitstreamError{Cause: errHuffmanUnresolved}
			}
			return h.Values[idx], nil
		}
		bit, ok := br.NextBit()
		if !ok {
			return 0, &BitstreamError{Cause: errBitstreamEOF}
		}
		code = (code << 1) | int32(bit)
	}
	return 0, &BitstreamError{Cause: errHuffmanUnresolved}
}

// receiveExtend implements RECEIVE + EXTEND (T.81 §F.2.2.1, spec.md §4.3):
// read s bits and sign-extend them into a coefficient value.
func receiveExtend(br *BitReader, s int) (int, error) {
	if s == 0 {
		return 0, nil
	}
	raw, ok := br.NextBits(s)
	if !ok {
		return 0, &BitstreamError{Cause: errBitstreamEOF}
	}
	v := int(raw)
	if v < (1 << uint(s-1)) {
		v -= (1 << uint(s)) - 1
	}
	return v, nil
}
