package jpeg

// frameComponent is one component entry from an SOF0 segment (spec.md §3,
// FrameHeader).
type frameComponent struct {
	id   int
	h, v int
	tq   int
}

// frameHeader is the parsed SOF0 segment plus its component list.
type frameHeader struct {
	precision  int
	width      int
	height     int
	components []frameComponent
}

// scanComponentSel is one scan component's Huffman table selectors, resolved
// against frameHeader.components by id (spec.md §3, ScanHeader).
type scanComponentSel struct {
	compIndex int
	dcSel     int
	acSel     int
}

// restartSegment is the destuffed entropy-coded data for the MCUs between two
// restart markers (or between SOS and the first restart, or the whole scan
// when there is no restart interval). Splitting the scan into segments at
// parse time means every segment's BitReader starts byte-aligned for free,
// which is exactly what a restart boundary requires (spec.md §4.5).
type restartSegment struct {
	data []byte
	// afterMarker is the RSTn sequence number (0-7) that terminated this
	// segment, or -1 for the final segment (terminated by a non-restart
	// marker instead).
	afterMarker int
}

// parsedStream is everything the segment framer extracts before entropy
// decoding begins: the frame geometry, the decode tables, and the
// restart-delimited scan data (spec.md §3's Lifecycles: tables, frame header
// and restart interval are immutable for the rest of the frame).
type parsedStream struct {
	frame           frameHeader
	qtables         [4]quantTable
	dcTables        [4]*HuffmanTable
	acTables        [4]*HuffmanTable
	restartInterval int
	scanComponents  []scanComponentSel
	segments        []restartSegment
}

// component is the decode-time state for one frame component: its sampling
// geometry, selected tables, DC predictor, and the full-image grid of
// spatial-domain (post-IDCT, pre-level-shift) samples it decodes into.
type component struct {
	frameComponent
	dcTable, acTable *HuffmanTable

	blocksWide, blocksHigh int // component-native block grid, = mcusX*h, mcusY*v
	samples                []int16

	dcPred int
}

func newComponent(fc frameComponent, blocksWide, blocksHigh int) *component {
	return &component{
		frameComponent: fc,
		blocksWide:     blocksWide,
		blocksHigh:     blocksHigh,
		samples:        make([]int16, blocksWide*8*blocksHigh*8),
	}
}

// setBlock copies a 64-sample spatial block (row-major) into the sample grid
// at native block coordinates (bx, by).
func (c *component) setBlock(bx, by int, block *[64]int16) {
	stride := c.blocksWide * 8
	ox, oy := bx*8, by*8
	for row := 0; row < 8; row++ {
		copy(c.samples[(oy+row)*stride+ox:(oy+row)*stride+ox+8], block[row*8:row*8+8])
	}
}

// Options configures a Decode call.
type Options struct {
	// MaxMCUs is a guard against a crafted frame header claiming an enormous
	// image: when the frame needs more MCUs than this, the decode fails with a
	// FramingError before any entropy decoding. 0 means no limit beyond what
	// the input buffer itself can support.
	MaxMCUs int

	// RestartTolerance is the number of restart-marker mismatches (spec.md
	// §7 RestartError: an RSTn with the wrong sequence number) decodeScan
	// will tolerate before aborting. 0 (the default) is strict: the first
	// mismatch fails the decode. A positive value lets the scan keep
	// decoding past a miscounted or reordered restart marker instead of
	// treating every mismatch as fatal, per spec.md §7's allowance for
	// restart-aware recovery.
	RestartTolerance int
}

// Result is the decoded, raster-assembled output (spec.md §6, External
// Interfaces): a row-major, top-to-bottom pixel buffer, channel-interleaved
// when Channels == 3.
type Result struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte
}
