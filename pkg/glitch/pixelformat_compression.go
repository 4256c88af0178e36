package glitch

import (
	"image"
	"math"
)

var blockCompression = &Transform{
	ID:       "block-compression",
	Name:     "Block Compression Artifacts",
	Category: CategoryPixelFormat,
	Description: "Texture compression stores each small block with a handful of colors. " +
		"Gradients turn into steps and edges pick up blocky color bleeding.",
	TechnicalDetails: "BC1/DXT1 keeps two RGB565 endpoints per 4x4 block and two colors " +
		"interpolated between them; every texel picks the closest of the four. Normal maps, " +
		"UI and text suffer most because their blocks contain more than one gradient.",
	BuggyExample: `// UI atlas compressed like a photo
compress_texture(atlas, FORMAT_BC1);`,
	FixedExample: `// keep sharp-edged content uncompressed (or use BC7)
compress_texture(atlas, is_ui ? FORMAT_RGBA8 : FORMAT_BC1);`,
	Params: []ParamSpec{
		modeParam("BC1 (DXT1)", "Block Average"),
		enumParam("blockSize", []string{"4x4", "8x8"}, "Edge length of a compression block"),
	},
	apply: applyBlockCompression,
}

func applyBlockCompression(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	size := 4
	if p.Choice("blockSize") == "8x8" {
		size = 8
	}
	average := p.Choice("mode") == "Block Average"

	for by := 0; by < h; by += size {
		for bx := 0; bx < w; bx += size {
			x1 := min(bx+size, w)
			y1 := min(by+size, h)
			if average {
				averageBlock(src, out, bx, by, x1, y1)
			} else {
				encodeBC1Block(src, out, bx, by, x1, y1)
			}
		}
	}
	return out
}

// averageBlock replaces the colors of [x0,x1)x[y0,y1) with their mean.
func averageBlock(src, out *image.NRGBA, x0, y0, x1, y1 int) {
	var sum [3]int
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := pixelAt(src, x, y)
			sum[0] += int(c[0])
			sum[1] += int(c[1])
			sum[2] += int(c[2])
			n++
		}
	}
	var mean [3]uint8
	for k := range mean {
		mean[k] = toByte(float64(sum[k]) / float64(n))
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := pixelAt(src, x, y)
			setPixel(out, x, y, [4]uint8{mean[0], mean[1], mean[2], c[3]})
		}
	}
}

// encodeBC1Block approximates one block the way a BC1 encoder would: the
// brightest and darkest texels become RGB565 endpoints and every texel is
// replaced by the nearest of the four palette colors.
func encodeBC1Block(src, out *image.NRGBA, x0, y0, x1, y1 int) {
	lo, hi := pixelAt(src, x0, y0), pixelAt(src, x0, y0)
	loL, hiL := luma(lo), luma(hi)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := pixelAt(src, x, y)
			l := luma(c)
			if l < loL {
				lo, loL = c, l
			}
			if l > hiL {
				hi, hiL = c, l
			}
		}
	}

	e0 := quantize565(hi)
	e1 := quantize565(lo)
	var palette [4][3]float64
	for k := 0; k < 3; k++ {
		palette[0][k] = e0[k]
		palette[1][k] = e1[k]
		palette[2][k] = math.Round((2*e0[k] + e1[k]) / 3)
		palette[3][k] = math.Round((e0[k] + 2*e1[k]) / 3)
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := pixelAt(src, x, y)
			best, bestDist := 0, math.MaxFloat64
			for i, pc := range palette {
				dr := float64(c[0]) - pc[0]
				dg := float64(c[1]) - pc[1]
				db := float64(c[2]) - pc[2]
				if d := dr*dr + dg*dg + db*db; d < bestDist {
					best, bestDist = i, d
				}
			}
			pc := palette[best]
			setPixel(out, x, y, [4]uint8{toByte(pc[0]), toByte(pc[1]), toByte(pc[2]), c[3]})
		}
	}
}

// quantize565 rounds c to 5:6:5 bits and expands it back to 8 bits.
func quantize565(c [4]uint8) [3]float64 {
	r5 := math.Round(float64(c[0]) * 31 / 255)
	g6 := math.Round(float64(c[1]) * 63 / 255)
	b5 := math.Round(float64(c[2]) * 31 / 255)
	return [3]float64{
		math.Round(r5 * 255 / 31),
		math.Round(g6 * 255 / 63),
		math.Round(b5 * 255 / 31),
	}
}
