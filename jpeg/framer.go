package jpeg

import "encoding/binary"

// parse runs the segment framer (spec.md §4.1): a marker/length/segment/scan
// state machine over the whole input buffer. It stops once EOI is reached
// (or fails), returning the frame header, decode tables, restart interval,
// and the restart-delimited entropy data for the (single) scan.
//
// Grounded on jpeg/standard/reader.go's ReadMarker/ReadUint16 byte-level
// primitives and jpeg/baseline/decoder.go's marker dispatch loop, restructured
// around an in-memory cursor instead of io.Reader since the whole JPEG buffer
// is available up front (spec.md §5: "the caller delivers the entire JPEG
// byte buffer").
func parse(data []byte) (*parsedStream, error) {
	pos := 0

	readByte := func() (byte, error) {
		if pos >= len(data) {
			return 0, &FramingError{Cause: errTruncated}
		}
		b := data[pos]
		pos++
		return b, nil
	}
	readUint16 := func() (uint16, error) {
		if pos+2 > len(data) {
			return 0, &FramingError{Cause: errTruncated}
		}
		v := binary.BigEndian.Uint16(data[pos : pos+2])
		pos += 2
		return v, nil
	}
	// readMarker consumes a 0xFF prefix (collapsing runs of 0xFF fill bytes
	// per spec.md §3/§9 Open Question (a)) and returns the marker's full
	// 16-bit value.
	readMarker := func() (uint16, error) {
		b, err := readByte()
		if err != nil {
			return 0, err
		}
		if b != 0xFF {
			return 0, &FramingError{Cause: errUnknownMarker}
		}
		for {
			b, err = readByte()
			if err != nil {
				return 0, err
			}
			if b != 0xFF {
				break
			}
		}
		return 0xFF00 | uint16(b), nil
	}

	marker, err := readMarker()
	if err != nil {
		return nil, err
	}
	if marker != MarkerSOI {
		return nil, &FramingError{Cause: errMissingSOI}
	}

	ps := &parsedStream{}
	haveFrame := false
	haveScan := false

	for {
		marker, err = readMarker()
		if err != nil {
			return nil, err
		}

		switch {
		case marker == MarkerEOI:
			if !haveFrame {
				return nil, &FramingError{Cause: errNoFrame}
			}
			return ps, nil

		case marker == MarkerTEM:
			continue

		case IsRST(marker):
			// A restart marker outside scan data is a framing error
			// (spec.md §4.1: "RSTn only legal inside Scan state").
			return nil, &FramingError{Cause: errUnknownMarker}

		case marker == MarkerSOF0:
			length, err := readUint16()
			if err != nil {
				return nil, err
			}
			fh, err := parseSOF(data[pos:pos+int(length)-2])
			if err != nil {
				return nil, err
			}
			pos += int(length) - 2
			ps.frame = fh
			haveFrame = true

		case IsSOF(marker):
			return nil, &UnsupportedFeature{Cause: errUnsupportedSOF}

		case marker == MarkerDHT:
			length, err := readUint16()
			if err != nil {
				return nil, err
			}
			if err := parseDHT(data[pos:pos+int(length)-2], ps); err != nil {
				return nil, err
			}
			pos += int(length) - 2

		case marker == MarkerDQT:
			length, err := readUint16()
			if err != nil {
				return nil, err
			}
			if err := parseDQT(data[pos:pos+int(length)-2], ps); err != nil {
				return nil, err
			}
			pos += int(length) - 2

		case marker == MarkerDRI:
			length, err := readUint16()
			if err != nil {
				return nil, err
			}
			if length != 4 {
				return nil, &FramingError{Cause: errLengthMismatch}
			}
			ri, err := readUint16()
			if err != nil {
				return nil, err
			}
			ps.restartInterval = int(ri)

		case marker == MarkerSOS:
			if !haveFrame {
				return nil, &FramingError{Cause: errUnknownMarker}
			}
			if haveScan {
				return nil, &UnsupportedFeature{Cause: errUnsupportedSOF}
			}
			length, err := readUint16()
			if err != nil {
				return nil, err
			}
			sel, err := parseSOS(data[pos:pos+int(length)-2], ps.frame)
			if err != nil {
				return nil, err
			}
			pos += int(length) - 2
			ps.scanComponents = sel

			segs, newPos, err := splitScan(data, pos)
			if err != nil {
				return nil, err
			}
			ps.segments = segs
			pos = newPos
			haveScan = true

		case HasLength(marker):
			// DNL, COM, APPn, EXP: payload is skipped by length; its bytes
			// are not kept in the parsed stream.
			length, err := readUint16()
			if err != nil {
				return nil, err
			}
			if int(length) < 2 || pos+int(length)-2 > len(data) {
				return nil, &FramingError{Cause: errLengthMismatch}
			}
			pos += int(length) - 2

		default:
			return nil, &FramingError{Cause: errUnknownMarker}
		}
	}
}

// parseSOF parses an SOF0 payload (spec.md §3 FrameHeader, §4.1).
func parseSOF(p []byte) (frameHeader, error) {
	if len(p) < 6 {
		return frameHeader{}, &FramingError{Cause: errTruncated}
	}
	precision := int(p[0])
	if precision != 8 {
		return frameHeader{}, &UnsupportedFeature{Cause: errUnsupportedDepth}
	}
	height := int(binary.BigEndian.Uint16(p[1:3]))
	width := int(binary.BigEndian.Uint16(p[3:5]))
	nf := int(p[5])
	if nf != 1 && nf != 3 {
		return frameHeader{}, &UnsupportedFeature{Cause: errUnsupportedNf}
	}
	if len(p) != 6+3*nf {
		return frameHeader{}, &FramingError{Cause: errLengthMismatch}
	}
	fh := frameHeader{precision: precision, width: width, height: height}
	for i := 0; i < nf; i++ {
		off := 6 + 3*i
		id := int(p[off])
		h := int(p[off+1] >> 4)
		v := int(p[off+1] & 0x0F)
		tq := int(p[off+2])
		if h < 1 || h > 4 || v < 1 || v > 4 {
			return frameHeader{}, &UnsupportedFeature{Cause: errSamplingTooLarge}
		}
		if tq > 3 {
			return frameHeader{}, &TableError{Cause: errQuantDestRange}
		}
		fh.components = append(fh.components, frameComponent{id: id, h: h, v: v, tq: tq})
	}
	return fh, nil
}

// parseDHT iteratively parses every Huffman table in one DHT segment
// (spec.md §4.1 "DHT sub-parse").
func parseDHT(p []byte, ps *parsedStream) error {
	for len(p) > 0 {
		if len(p) < 17 {
			return &TableError{Cause: errLengthMismatch}
		}
		class := p[0] >> 4
		dest := p[0] & 0x0F
		if dest > 3 {
			return &TableError{Cause: errQuantDestRange}
		}
		var bits [16]int
		total := 0
		for i := 0; i < 16; i++ {
			bits[i] = int(p[1+i])
			total += bits[i]
		}
		if 17+total > len(p) {
			return &TableError{Cause: errLengthMismatch}
		}
		values := make([]byte, total)
		copy(values, p[17:17+total])

		table := &HuffmanTable{Bits: bits, Values: values}
		if err := table.Build(); err != nil {
			return err
		}
		if class == 0 {
			ps.dcTables[dest] = table
		} else {
			ps.acTables[dest] = table
		}
		p = p[17+total:]
	}
	return nil
}

// parseDQT iteratively parses every quantization table in one DQT segment
// (spec.md §4.1 "DQT sub-parse"). Table bytes are stored in zigzag order on
// the wire; they are unscrambled into natural order here so dequantize can
// multiply elementwise against an already-unscrambled coefficient block.
func parseDQT(p []byte, ps *parsedStream) error {
	for len(p) > 0 {
		if len(p) < 1 {
			return &TableError{Cause: errLengthMismatch}
		}
		pq := p[0] >> 4
		tq := p[0] & 0x0F
		if tq > 3 {
			return &TableError{Cause: errQuantDestRange}
		}
		if pq == 1 {
			return &UnsupportedFeature{Cause: errUnsupportedPq}
		}
		if pq != 0 {
			return &TableError{Cause: errQuantDestRange}
		}
		if len(p) < 65 {
			return &TableError{Cause: errLengthMismatch}
		}
		var q quantTable
		q.defined = true
		for k := 0; k < 64; k++ {
			q.values[zigzag[k]] = int32(p[1+k])
		}
		ps.qtables[tq] = q
		p = p[65:]
	}
	return nil
}

// parseSOS parses an SOS payload (spec.md §3 ScanHeader, §4.1) and resolves
// each scan component against the frame's component list by id.
func parseSOS(p []byte, fh frameHeader) ([]scanComponentSel, error) {
	if len(p) < 1 {
		return nil, &FramingError{Cause: errTruncated}
	}
	ns := int(p[0])
	if len(p) != 1+2*ns+3 {
		return nil, &FramingError{Cause: errLengthMismatch}
	}
	sel := make([]scanComponentSel, ns)
	for i := 0; i < ns; i++ {
		off := 1 + 2*i
		cs := int(p[off])
		td := int(p[off+1] >> 4)
		ta := int(p[off+1] & 0x0F)
		idx := -1
		for ci, c := range fh.components {
			if c.id == cs {
				idx = ci
				break
			}
		}
		if idx < 0 {
			return nil, &TableError{Cause: errUndefinedSelector}
		}
		sel[i] = scanComponentSel{compIndex: idx, dcSel: td, acSel: ta}
	}
	ss, se, ahal := p[1+2*ns], p[1+2*ns+1], p[1+2*ns+2]
	if ss != 0 || se != 63 || ahal != 0 {
		return nil, &UnsupportedFeature{Cause: errUnsupportedSOF}
	}
	return sel, nil
}

// splitScan consumes entropy-coded scan data starting at pos, destuffing
// FF 00 escapes and splitting on FF Dn restart markers, stopping at the next
// real marker (left unconsumed so the caller's marker loop can dispatch it).
// Spec.md §4.1 "Scan" state plus §3's byte-stuffing/fill-byte rules.
func splitScan(data []byte, pos int) (segs []restartSegment, newPos int, err error) {
	var cur []byte
	for {
		if pos >= len(data) {
			return nil, 0, &FramingError{Cause: errTruncated}
		}
		b := data[pos]
		if b != 0xFF {
			cur = append(cur, b)
			pos++
			continue
		}
		if pos+1 >= len(data) {
			return nil, 0, &FramingError{Cause: errTruncated}
		}
		b2 := data[pos+1]
		switch {
		case b2 == 0x00:
			cur = append(cur, 0xFF)
			pos += 2
		case b2 == 0xFF:
			// Fill byte: collapse the run, re-examine at pos+1 (spec.md §9 (a), (b)).
			pos++
		case IsRST(0xFF00 | uint16(b2)):
			n := int(b2 - 0xD0)
			segs = append(segs, restartSegment{data: cur, afterMarker: n})
			cur = nil
			pos += 2
		default:
			segs = append(segs, restartSegment{data: cur, afterMarker: -1})
			return segs, pos, nil
		}
	}
}
