package jpeg

// decodeBlock decodes one 8x8 coefficient block from br using dc/ac and the
// component's running DC predictor (spec.md §4.4). Coefficients are placed
// into natural (non-zigzag) order as they're decoded.
func decodeBlock(br *BitReader, dc, ac *HuffmanTable, dcPred *int) (*[64]int32, error) {
	var block [64]int32

	t, err := dc.Decode(br)
	if err != nil {
		return nil, err
	}
	if t > 11 {
		return nil, &BitstreamError{Cause: errDCCategoryRange}
	}
	diff, err := receiveExtend(br, int(t))
	if err != nil {
		return nil, err
	}
	*dcPred += diff
	block[0] = int32(*dcPred)

	k := 1
	for k < 64 {
		rs, err := ac.Decode(br)
		if err != nil {
			return nil, err
		}
		r := int(rs >> 4)
		s := int(rs & 0x0F)

		if rs == 0x00 { // EOB: remaining coefficients stay zero.
			break
		}
		if rs == 0xF0 { // ZRL: 16 zero coefficients.
			k += 16
			continue
		}
		if s > 10 {
			return nil, &BitstreamError{Cause: errACCategoryRange}
		}
		k += r
		if k > 63 {
			return nil, &BitstreamError{Cause: errRunPastEOB}
		}
		val, err := receiveExtend(br, s)
		if err != nil {
			return nil, err
		}
		block[zigzag[k]] = int32(val)
		k++
	}

	return &block, nil
}

// decodeSegment decodes every MCU in one restart segment, writing spatial
// (post-IDCT, pre-level-shift) samples into each component's image-wide
// sample grid. mcuStart is this segment's first 0-based MCU index, used only
// to compute each MCU's (my, mx) placement within the component grids.
func decodeSegment(seg restartSegment, ps *parsedStream, comps []*component, mcuStart, mcuCount, mcusX int) error {
	br := NewBitReader(seg.data)

	for i := 0; i < mcuCount; i++ {
		mcuIdx := mcuStart + i
		my := mcuIdx / mcusX
		mx := mcuIdx % mcusX

		for _, sel := range ps.scanComponents {
			c := comps[sel.compIndex]
			for v := 0; v < c.v; v++ {
				for h := 0; h < c.h; h++ {
					coef, err := decodeBlock(br, c.dcTable, c.acTable, &c.dcPred)
					if err != nil {
						return err
					}
					dequantize(coef, &ps.qtables[c.tq])

					var spatial [64]int16
					IDCT(coef, &spatial)

					c.setBlock(mx*c.h+h, my*c.v+v, &spatial)
				}
			}
		}
	}
	return nil
}
