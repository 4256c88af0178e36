package glitch

import (
	"image"
	"math"
)

var textureFiltering = &Transform{
	ID:       "texture-filtering",
	Name:     "Texture Filtering",
	Category: CategoryCoordinates,
	Description: "A small texture is stretched over a large area with the wrong filter: " +
		"nearest gives hard blocks, bilinear gives soft blur, and a misconfigured kernel " +
		"smears everything.",
	TechnicalDetails: "Magnification picks either the single closest texel (GL_NEAREST) or " +
		"blends the four around the sample point (GL_LINEAR). Pixel art wants nearest; photos " +
		"want linear. Taking many taps over too wide a footprint blurs far beyond what the " +
		"texture resolution explains.",
	BuggyExample: `// pixel-art sprite magnified with linear filtering
glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_MAG_FILTER, GL_LINEAR);`,
	FixedExample: `glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_MAG_FILTER, GL_NEAREST);`,
	Params: []ParamSpec{
		modeParam("Nearest", "Bilinear", "Excessive Blur"),
		rangeParam("scale", 4, 2, 16, 1, "Magnification factor"),
	},
	apply: applyTextureFiltering,
}

// blurTaps are the per-axis offsets, in low-res texels, of the 5x5 blur kernel.
var blurTaps = [5]float64{-1, -0.5, 0, 0.5, 1}

func applyTextureFiltering(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	if w == 0 || h == 0 {
		return out
	}
	scale := max(1, p.Int("scale"))
	low := pointSample(src, scale)
	mode := p.Choice("mode")
	fs := float64(scale)

	for y := 0; y < h; y++ {
		v := (float64(y)+0.5)/fs - 0.5
		for x := 0; x < w; x++ {
			u := (float64(x)+0.5)/fs - 0.5
			var c [4]uint8
			switch mode {
			case "Bilinear":
				c = sampleBilinear(low, u, v)
			case "Excessive Blur":
				var sum [4]float64
				for _, oy := range blurTaps {
					for _, ox := range blurTaps {
						t := sampleBilinearF(low, u+ox, v+oy)
						for k := range sum {
							sum[k] += t[k]
						}
					}
				}
				n := float64(len(blurTaps) * len(blurTaps))
				c = [4]uint8{toByte(sum[0] / n), toByte(sum[1] / n), toByte(sum[2] / n), toByte(sum[3] / n)}
			default:
				c = pixelAt(low, x/scale, y/scale)
			}
			setPixel(out, x, y, c)
		}
	}
	return out
}

// pointSample shrinks src by keeping every scale-th pixel.
func pointSample(src *image.NRGBA, scale int) *image.NRGBA {
	w, h := dims(src)
	lw := (w + scale - 1) / scale
	lh := (h + scale - 1) / scale
	low := newBitmap(lw, lh)
	for y := 0; y < lh; y++ {
		for x := 0; x < lw; x++ {
			setPixel(low, x, y, pixelAt(src, x*scale, y*scale))
		}
	}
	return low
}

var halfTexel = &Transform{
	ID:       "half-texel",
	Name:     "Half-Texel Offset",
	Category: CategoryCoordinates,
	Description: "Texel centres sit at half-integer coordinates. Getting the half-texel " +
		"correction wrong shifts the image by half a pixel and blurs every edge under " +
		"bilinear filtering.",
	TechnicalDetails: "Direct3D 9 mapped pixel centres to integer coordinates while texels " +
		"are centred at +0.5, so full-screen passes had to offset by half a texel. Forgetting " +
		"it, or applying it twice after porting to an API that already agrees, samples between " +
		"texels instead of on them.",
	BuggyExample: `// D3D11 port still applies the D3D9 fix
float2 uv = (pixel + 0.5) / size + 0.5 / size;`,
	FixedExample: `float2 uv = (pixel + 0.5) / size;`,
	Params: []ParamSpec{
		modeParam("Missing Half-Texel", "Double Correction", "Corrected"),
		boolParam("bilinear", true, "Sample with bilinear filtering instead of nearest"),
	},
	apply: applyHalfTexel,
}

func applyHalfTexel(src *image.NRGBA, p Params) *image.NRGBA {
	offset := 0.0
	switch p.Choice("mode") {
	case "Missing Half-Texel":
		offset = 0.5
	case "Double Correction":
		offset = -0.5
	}
	if p.Bool("bilinear") {
		return resample(src, func(x, y int) [4]uint8 {
			return sampleBilinear(src, float64(x)+offset, float64(y)+offset)
		})
	}
	return remapPixels(src, func(x, y int) (int, int) {
		return nearestTexel(x, offset), nearestTexel(y, offset)
	})
}

// nearestTexel returns the texel a point sampler hits at i+offset. A sample
// landing exactly on a texel boundary resolves in the direction of the
// offset, so a half-texel error always moves a whole texel.
func nearestTexel(i int, offset float64) int {
	v := float64(i) + offset
	if offset > 0 {
		return int(math.Ceil(v))
	}
	return int(math.Floor(v))
}

// resample builds a new bitmap the size of src from a per-pixel sampler.
func resample(src *image.NRGBA, fn func(x, y int) [4]uint8) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setPixel(out, x, y, fn(x, y))
		}
	}
	return out
}
