package jpeg

import "golang.org/x/exp/slices"

// mcuGeometry derives Hmax/Vmax and the MCU grid dimensions from the frame's
// per-component sampling factors (spec.md §3 MCU, §4.5).
type mcuGeometry struct {
	hmax, vmax   int
	mcusX, mcusY int
}

func computeMCUGeometry(fh frameHeader) mcuGeometry {
	hs := make([]int, len(fh.components))
	vs := make([]int, len(fh.components))
	for i, c := range fh.components {
		hs[i] = c.h
		vs[i] = c.v
	}
	hmax := slices.Max(hs)
	vmax := slices.Max(vs)
	mcusX := ceilDiv(fh.width, 8*hmax)
	mcusY := ceilDiv(fh.height, 8*vmax)
	return mcuGeometry{hmax: hmax, vmax: vmax, mcusX: mcusX, mcusY: mcusY}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// assembleRaster performs chroma upsampling, level-shift+clamp, and
// YCbCr->RGB (or grayscale passthrough) conversion, then places each pixel
// into the final width x height raster, discarding MCU padding beyond the
// image's true dimensions (spec.md §4.8, §4.9, §4.10).
func assembleRaster(fh frameHeader, comps []*component, geo mcuGeometry) *Result {
	channels := 1
	if len(comps) == 3 {
		channels = 3
	}

	pixels := make([]byte, fh.width*fh.height*channels)

	sx := make([]int, len(comps))
	sy := make([]int, len(comps))
	for i, c := range comps {
		sx[i] = geo.hmax / c.h
		sy[i] = geo.vmax / c.v
	}

	for y := 0; y < fh.height; y++ {
		rowOff := y * fh.width * channels
		for x := 0; x < fh.width; x++ {
			pixOff := rowOff + x*channels
			if channels == 1 {
				raw := upsample(comps[0], sx[0], sy[0], y, x)
				pixels[pixOff] = levelShiftClamp(raw)
				continue
			}
			yy := levelShiftClamp(upsample(comps[0], sx[0], sy[0], y, x))
			cb := levelShiftClamp(upsample(comps[1], sx[1], sy[1], y, x))
			cr := levelShiftClamp(upsample(comps[2], sx[2], sy[2], y, x))
			r, g, b := ycbcrToRGB(yy, cb, cr)
			pixels[pixOff+0] = r
			pixels[pixOff+1] = g
			pixels[pixOff+2] = b
		}
	}

	return &Result{Width: fh.width, Height: fh.height, Channels: channels, Pixels: pixels}
}
