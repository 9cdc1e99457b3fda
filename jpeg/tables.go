package jpeg

// StandardDCLuminanceBits and StandardDCLuminanceValues are the Annex K
// standard DC luminance Huffman table, kept as a worked example for
// BuildStandardHuffmanTable (the production decode path only ever builds
// tables from a stream's own DHT segments, per spec.md §4.1's DHT sub-parse
// and decode.go's errUndefinedSelector check — a JPEG carries its own
// tables, there is no "default" table a baseline decoder falls back to).
var StandardDCLuminanceBits = [16]int{
	0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0,
}

// StandardDCLuminanceValues contains the Huffman values (DC luminance)
var StandardDCLuminanceValues = []byte{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11,
}

// BuildStandardHuffmanTable builds a standard Huffman table
func BuildStandardHuffmanTable(bits [16]int, values []byte) *HuffmanTable {
	table := &HuffmanTable{
		Bits:   bits,
		Values: values,
	}
	_ = table.Build() // Build() always succeeds for standard tables
	return table
}
