// Package jpeg decodes a baseline (ITU-T T.81 sequential, Huffman-coded,
// 8-bit) JPEG byte stream into a row-major pixel raster. Progressive,
// arithmetic-coded, hierarchical, and lossless JPEG are not supported;
// encoding, ICC/EXIF handling, and CMYK color are out of scope.
package jpeg

// Decode parses and decodes a complete JPEG byte buffer with default
// options. See DecodeOptions.
func Decode(data []byte) (*Result, error) {
	return DecodeOptions(data, Options{})
}

// DecodeOptions runs the full pipeline (spec.md §2): segment framing, table
// construction, entropy decoding, dequantization, inverse DCT, chroma
// upsampling, and color conversion, producing a single pixel raster.
func DecodeOptions(data []byte, opts Options) (*Result, error) {
	ps, err := parse(data)
	if err != nil {
		return nil, err
	}
	if ps.scanComponents == nil {
		return nil, &FramingError{Cause: errNoScan}
	}

	geo := computeMCUGeometry(ps.frame)
	totalMCUs := geo.mcusX * geo.mcusY
	if opts.MaxMCUs > 0 && totalMCUs > opts.MaxMCUs {
		return nil, &FramingError{Cause: errTruncated}
	}

	sumHV := 0
	for _, c := range ps.frame.components {
		sumHV += c.h * c.v
	}
	if sumHV > 10 {
		return nil, &UnsupportedFeature{Cause: errSamplingTooLarge}
	}

	comps := make([]*component, len(ps.frame.components))
	for i, fc := range ps.frame.components {
		if !ps.qtables[fc.tq].defined {
			return nil, &TableError{Cause: errUndefinedSelector}
		}
		comps[i] = newComponent(fc, geo.mcusX*fc.h, geo.mcusY*fc.v)
	}
	for _, sel := range ps.scanComponents {
		dc := ps.dcTables[sel.dcSel]
		ac := ps.acTables[sel.acSel]
		if dc == nil || ac == nil {
			return nil, &TableError{Cause: errUndefinedSelector}
		}
		comps[sel.compIndex].dcTable = dc
		comps[sel.compIndex].acTable = ac
	}

	if err := decodeScan(ps, comps, geo, totalMCUs, opts.RestartTolerance); err != nil {
		return nil, err
	}

	return assembleRaster(ps.frame, comps, geo), nil
}

// decodeScan walks every restart segment in order, resetting each
// component's DC predictor to 0 at the start of every segment (spec.md §3
// "DC predictors are per-component and reset to 0 at scan start and at each
// restart marker" — segment boundaries are restart boundaries by
// construction, see restartSegment) and validating the RSTn sequence number
// between segments (spec.md §4.5, §7 RestartError). Up to tolerance
// mismatched sequence numbers are tolerated (Options.RestartTolerance)
// before a mismatch aborts the decode.
func decodeScan(ps *parsedStream, comps []*component, geo mcuGeometry, totalMCUs int, tolerance int) error {
	R := ps.restartInterval
	mcuStart := 0
	mismatches := 0
	for i, seg := range ps.segments {
		for _, c := range comps {
			c.dcPred = 0
		}

		mcuCount := totalMCUs - mcuStart
		if R > 0 && mcuCount > R {
			mcuCount = R
		}
		if mcuCount <= 0 {
			break
		}

		if err := decodeSegment(seg, ps, comps, mcuStart, mcuCount, geo.mcusX); err != nil {
			return err
		}
		mcuStart += mcuCount

		isLast := i == len(ps.segments)-1
		mismatched := false
		if !isLast {
			mismatched = seg.afterMarker != i%8
		} else {
			mismatched = seg.afterMarker != -1
		}
		if mismatched {
			mismatches++
			if mismatches > tolerance {
				return &RestartError{Cause: errRestartMismatch}
			}
		}
	}
	if mcuStart < totalMCUs {
		return &RestartError{Cause: errRestartNotFound}
	}
	return nil
}
