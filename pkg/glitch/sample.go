package glitch

import (
	"image"
	"math"
)

// sampleNearest returns the pixel containing the continuous coordinate
// (x,y), where integer coordinates are pixel corners. Out-of-range
// coordinates are clamped to the edge.
func sampleNearest(src *image.NRGBA, x, y float64) [4]uint8 {
	return pixelAt(src, int(math.Floor(x)), int(math.Floor(y)))
}

// sampleBilinearF interpolates src at (x,y), where integer coordinates are
// pixel centres. The four taps are clamped to the edge and blended
// horizontally first, then vertically.
func sampleBilinearF(src *image.NRGBA, x, y float64) (c [4]float64) {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	xFrac := x - float64(x0)
	yFrac := y - float64(y0)

	c00 := pixelAt(src, x0, y0)
	c10 := pixelAt(src, x0+1, y0)
	c01 := pixelAt(src, x0, y0+1)
	c11 := pixelAt(src, x0+1, y0+1)

	for k := 0; k < 4; k++ {
		top := float64(c00[k])*(1-xFrac) + float64(c10[k])*xFrac
		bottom := float64(c01[k])*(1-xFrac) + float64(c11[k])*xFrac
		c[k] = top*(1-yFrac) + bottom*yFrac
	}
	return c
}

// sampleBilinear is sampleBilinearF rounded to bytes.
func sampleBilinear(src *image.NRGBA, x, y float64) [4]uint8 {
	f := sampleBilinearF(src, x, y)
	return [4]uint8{toByte(f[0]), toByte(f[1]), toByte(f[2]), toByte(f[3])}
}

// luma returns the Rec.709 luminance of c on a 0..255 scale.
func luma(c [4]uint8) float64 {
	return 0.2126*float64(c[0]) + 0.7152*float64(c[1]) + 0.0722*float64(c[2])
}
