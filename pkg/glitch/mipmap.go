package glitch

import (
	"image"
	"math"
)

// generateMipmaps builds a mip chain from src. Level 0 is src itself (not
// copied); every following level halves both dimensions with a 2x2 box
// filter until the larger dimension reaches 1.
func generateMipmaps(src *image.NRGBA) []*image.NRGBA {
	w, h := dims(src)
	if w == 0 || h == 0 {
		return []*image.NRGBA{src}
	}
	numLevels := mipLevelCount(w, h)
	levels := make([]*image.NRGBA, numLevels)
	levels[0] = src
	for i := 1; i < numLevels; i++ {
		levels[i] = downsample(levels[i-1])
	}
	return levels
}

// downsample halves src using a 2x2 box filter. Odd edges reuse the last
// row/column. Averages are rounded to nearest.
func downsample(src *image.NRGBA) *image.NRGBA {
	srcW, srcH := dims(src)
	dstW := max(1, srcW/2)
	dstH := max(1, srcH/2)
	dst := newBitmap(dstW, dstH)

	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			sx := dx * 2
			sy := dy * 2

			c0 := pixelAt(src, sx, sy)
			c1 := pixelAt(src, min(sx+1, srcW-1), sy)
			c2 := pixelAt(src, sx, min(sy+1, srcH-1))
			c3 := pixelAt(src, min(sx+1, srcW-1), min(sy+1, srcH-1))

			var c [4]uint8
			for k := 0; k < 4; k++ {
				sum := int(c0[k]) + int(c1[k]) + int(c2[k]) + int(c3[k])
				c[k] = uint8((sum + 2) / 4)
			}
			setPixel(dst, dx, dy, c)
		}
	}
	return dst
}

// mipLevelCount returns how many levels generateMipmaps builds for a w x h image.
func mipLevelCount(w, h int) int {
	if w <= 0 || h <= 0 {
		return 1
	}
	return 1 + int(math.Floor(math.Log2(float64(max(w, h)))))
}
