package jpeg

import (
	"errors"
	"testing"
)

func TestDecodeMissingSOI(t *testing.T) {
	_, err := Decode([]byte{0x00, 0x01})
	var fe *FramingError
	if !errors.As(err, &fe) {
		t.Fatalf("Decode() error = %v, want *FramingError", err)
	}
}

func TestDecodeNoFrameBeforeEOI(t *testing.T) {
	_, err := Decode([]byte{0xFF, 0xD8, 0xFF, 0xD9})
	var fe *FramingError
	if !errors.As(err, &fe) {
		t.Fatalf("Decode() error = %v, want *FramingError", err)
	}
	if !errors.Is(err, errNoFrame) {
		t.Fatalf("Decode() error = %v, want wrapping errNoFrame", err)
	}
}

func TestSplitScanDestuffsAndStopsAtMarker(t *testing.T) {
	data := []byte{0x12, 0x34, 0xFF, 0x00, 0x56, 0xFF, 0xD9}
	segs, newPos, err := splitScan(data, 0)
	if err != nil {
		t.Fatalf("splitScan: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("len(segs) = %d, want 1", len(segs))
	}
	want := []byte{0x12, 0x34, 0xFF, 0x56}
	if string(segs[0].data) != string(want) {
		t.Fatalf("segs[0].data = %v, want %v", segs[0].data, want)
	}
	if segs[0].afterMarker != -1 {
		t.Fatalf("segs[0].afterMarker = %d, want -1", segs[0].afterMarker)
	}
	if newPos != 5 {
		t.Fatalf("newPos = %d, want 5 (pointing at the unconsumed FF D9)", newPos)
	}
}

func TestSplitScanRestartMarker(t *testing.T) {
	// one byte, RST2, one more byte, then EOI.
	data := []byte{0xAB, 0xFF, 0xD2, 0xCD, 0xFF, 0xD9}
	segs, newPos, err := splitScan(data, 0)
	if err != nil {
		t.Fatalf("splitScan: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}
	if segs[0].afterMarker != 2 {
		t.Fatalf("segs[0].afterMarker = %d, want 2", segs[0].afterMarker)
	}
	if segs[1].afterMarker != -1 {
		t.Fatalf("segs[1].afterMarker = %d, want -1", segs[1].afterMarker)
	}
	if newPos != 4 {
		t.Fatalf("newPos = %d, want 4", newPos)
	}
}

// oneBlockDCTables builds the tables for a one-block MCU's bitstream: DC code
// "0" (category 3), 3 EXTEND bits for diff=4, then AC code "0" (EOB).
// Category 3 is used rather than category 4 so the EXTEND value can actually
// equal 4: category 4 only covers magnitudes 8..15.
func oneBlockDCTables() (dc, ac *HuffmanTable) {
	dc = &HuffmanTable{Bits: [16]int{1}, Values: []byte{3}}
	if err := dc.Build(); err != nil {
		panic(err)
	}
	ac = &HuffmanTable{Bits: [16]int{1}, Values: []byte{0x00}}
	if err := ac.Build(); err != nil {
		panic(err)
	}
	return dc, ac
}

// TestDecodeBlockPipelineDCOnly exercises decodeBlock -> dequantize -> IDCT ->
// levelShiftClamp end to end for a single DC-only block, matching the worked
// example of a DC difference of 4 against a flat (all-ones) quantization
// table: the IDCT spreads 4/8 = 0.5 across every sample and rounds it to 1,
// and the level shift then gives 129.
func TestDecodeBlockPipelineDCOnly(t *testing.T) {
	dc, ac := oneBlockDCTables()

	// bits: "0" (DC code) + "100" (EXTEND, value 4) + "0" (AC EOB) = 01000 0..
	br := NewBitReader([]byte{0b01000000})
	dcPred := 0
	coef, err := decodeBlock(br, dc, ac, &dcPred)
	if err != nil {
		t.Fatalf("decodeBlock: %v", err)
	}
	if coef[0] != 4 {
		t.Fatalf("coef[0] = %d, want 4", coef[0])
	}
	for k := 1; k < 64; k++ {
		if coef[k] != 0 {
			t.Fatalf("coef[%d] = %d, want 0", k, coef[k])
		}
	}

	q := quantTable{defined: true}
	for k := range q.values {
		q.values[k] = 1
	}
	dequantize(coef, &q)

	var spatial [64]int16
	IDCT(coef, &spatial)

	for i, v := range spatial {
		if v != 1 {
			t.Fatalf("spatial[%d] = %d, want 1", i, v)
		}
	}

	for i, v := range spatial {
		if got := levelShiftClamp(v); got != 129 {
			t.Fatalf("levelShiftClamp(spatial[%d]) = %d, want 129", i, got)
		}
	}
}

// TestDecodeScanResetsDCPredictorAtRestart builds two restart segments, each
// containing the identical one-block bitstream from
// TestDecodeBlockPipelineDCOnly. If the DC predictor correctly resets to 0 at
// the start of the second segment, both MCUs decode to the same spatial
// samples and the predictor ends at 4; if the predictor carried over, the
// second MCU's DC would accumulate to 8 instead of 4. A DC of 8 also rounds
// to spatial samples of 1, so the final predictor value is checked directly.
func TestDecodeScanResetsDCPredictorAtRestart(t *testing.T) {
	dc, ac := oneBlockDCTables()

	blockBits := []byte{0b01000000}

	ps := &parsedStream{
		frame: frameHeader{
			width: 16, height: 8,
			components: []frameComponent{{id: 1, h: 1, v: 1, tq: 0}},
		},
		restartInterval: 1,
		scanComponents:  []scanComponentSel{{compIndex: 0, dcSel: 0, acSel: 0}},
		segments: []restartSegment{
			{data: blockBits, afterMarker: 0},
			{data: blockBits, afterMarker: -1},
		},
	}
	ps.qtables[0] = quantTable{defined: true}
	for k := range ps.qtables[0].values {
		ps.qtables[0].values[k] = 1
	}
	ps.dcTables[0] = dc
	ps.acTables[0] = ac

	geo := computeMCUGeometry(ps.frame)
	if geo.mcusX != 2 || geo.mcusY != 1 {
		t.Fatalf("mcusX,mcusY = %d,%d, want 2,1", geo.mcusX, geo.mcusY)
	}

	comp := newComponent(ps.frame.components[0], geo.mcusX, geo.mcusY)
	comp.dcTable = dc
	comp.acTable = ac
	comps := []*component{comp}

	if err := decodeScan(ps, comps, geo, geo.mcusX*geo.mcusY, 0); err != nil {
		t.Fatalf("decodeScan: %v", err)
	}

	stride := comp.blocksWide * 8
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			left := comp.samples[row*stride+col]
			right := comp.samples[row*stride+8+col]
			if left != 1 || right != 1 {
				t.Fatalf("samples[%d][%d] = (%d,%d), want (1,1) -- predictor did not reset at restart", row, col, left, right)
			}
		}
	}
	if comp.dcPred != 4 {
		t.Fatalf("dcPred after second segment = %d, want 4 -- predictor did not reset at restart", comp.dcPred)
	}
}

// TestDecodeScanRestartTolerance verifies Options.RestartTolerance: a
// restart marker with the wrong sequence number is fatal at the default
// tolerance (0) but is tolerated, and decoding continues, when the caller
// allows at least that many mismatches.
func TestDecodeScanRestartTolerance(t *testing.T) {
	dc, ac := oneBlockDCTables()
	blockBits := []byte{0b01000000}

	newStream := func() (*parsedStream, []*component, mcuGeometry) {
		ps := &parsedStream{
			frame: frameHeader{
				width: 16, height: 8,
				components: []frameComponent{{id: 1, h: 1, v: 1, tq: 0}},
			},
			restartInterval: 1,
			scanComponents:  []scanComponentSel{{compIndex: 0, dcSel: 0, acSel: 0}},
			segments: []restartSegment{
				// afterMarker should be 0 for the first of two segments;
				// 5 is a deliberate mismatch.
				{data: blockBits, afterMarker: 5},
				{data: blockBits, afterMarker: -1},
			},
		}
		ps.qtables[0] = quantTable{defined: true}
		for k := range ps.qtables[0].values {
			ps.qtables[0].values[k] = 1
		}
		ps.dcTables[0] = dc
		ps.acTables[0] = ac

		geo := computeMCUGeometry(ps.frame)
		comp := newComponent(ps.frame.components[0], geo.mcusX, geo.mcusY)
		comp.dcTable = dc
		comp.acTable = ac
		return ps, []*component{comp}, geo
	}

	ps, comps, geo := newStream()
	err := decodeScan(ps, comps, geo, geo.mcusX*geo.mcusY, 0)
	var re *RestartError
	if !errors.As(err, &re) {
		t.Fatalf("decodeScan with tolerance=0 error = %v, want *RestartError", err)
	}

	ps, comps, geo = newStream()
	if err := decodeScan(ps, comps, geo, geo.mcusX*geo.mcusY, 1); err != nil {
		t.Fatalf("decodeScan with tolerance=1: %v", err)
	}
}
