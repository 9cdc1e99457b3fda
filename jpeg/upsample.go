package jpeg

// upsample reads one pixel from a component's native-resolution sample grid
// at the position corresponding to a full-resolution (luma-grid) coordinate
// (y, x), nearest-neighbor replicating as spec.md §4.8 describes: "output
// pixel at (y, x) within the expanded region copies from source at
// (y·Vi/Vmax, x·Hi/Hmax)". sx, sy are the integer expansion factors
// Hmax/Hi, Vmax/Vi for this component (spec.md §4.8 — baseline subsampling
// always uses integer ratios: 4:4:4, 4:2:2, 4:2:0 all divide evenly).
func upsample(c *component, sx, sy, y, x int) int16 {
	sampleY := y / sy
	sampleX := x / sx
	stride := c.blocksWide * 8
	return c.samples[sampleY*stride+sampleX]
}
