package glitch

import (
	"image"
	"math"
)

// sentinels paint texels that fall outside [0,1] when no address mode applies.
var sentinels = map[string][4]uint8{
	"Magenta":     {255, 0, 255, 255},
	"Black":       {0, 0, 0, 255},
	"Transparent": {0, 0, 0, 0},
}

var uvWrap = &Transform{
	ID:       "uv-wrap",
	Name:     "UV Wrap Mode",
	Category: CategoryCoordinates,
	Description: "Texture coordinates run past 0..1 and the sampler's address mode decides " +
		"what appears there: repeated tiles, mirrored tiles, stretched edge texels or nothing.",
	TechnicalDetails: "Scaling UVs around the centre pushes them outside the unit square. " +
		"REPEAT keeps the fractional part, MIRRORED_REPEAT flips every other tile and " +
		"CLAMP_TO_EDGE smears the border. With no valid address mode the result is undefined, " +
		"shown here as a sentinel color.",
	BuggyExample: `// atlas sub-texture sampled with REPEAT, bleeds into neighbors
glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_WRAP_S, GL_REPEAT);`,
	FixedExample: `glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_WRAP_S, GL_CLAMP_TO_EDGE);
glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_WRAP_T, GL_CLAMP_TO_EDGE);`,
	Params: []ParamSpec{
		modeParam("Repeat", "Mirror", "Clamp", "None"),
		rangeParam("uvScale", 2, 0.5, 4, 0.1, "How far the UVs are scaled around the centre"),
		enumParam("sentinel", []string{"Magenta", "Black", "Transparent"}, "Color for out-of-range texels in None mode"),
	},
	apply: applyUVWrap,
}

func applyUVWrap(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	mode := p.Choice("mode")
	scale := p.Float("uvScale")
	sentinel := sentinels[p.Choice("sentinel")]

	out := newBitmap(w, h)
	for y := 0; y < h; y++ {
		v := (float64(y)+0.5)/float64(h)*scale - (scale-1)/2
		for x := 0; x < w; x++ {
			u := (float64(x)+0.5)/float64(w)*scale - (scale-1)/2
			if mode == "None" && (u < 0 || u > 1 || v < 0 || v > 1) {
				setPixel(out, x, y, sentinel)
				continue
			}
			fu, fv := wrapUV(u, mode), wrapUV(v, mode)
			setPixel(out, x, y, sampleNearest(src, fu*float64(w), fv*float64(h)))
		}
	}
	return out
}

// wrapUV applies a sampler address mode to one texture coordinate.
func wrapUV(u float64, mode string) float64 {
	switch mode {
	case "Repeat":
		return u - math.Floor(u)
	case "Mirror":
		tile := math.Floor(u)
		f := u - tile
		// truncated modulo: negative odd tiles are left unmirrored
		if int(tile)%2 == 1 {
			f = 1 - f
		}
		return f
	default:
		return math.Max(0, math.Min(1, u))
	}
}

var aspectRatio = &Transform{
	ID:       "aspect-ratio",
	Name:     "Aspect Ratio Error",
	Category: CategoryCoordinates,
	Description: "Width and height are swapped or forced equal somewhere between the asset " +
		"and the screen. The image is squashed or stretched, and uncovered areas go black.",
	TechnicalDetails: "Projection matrices built from height/width instead of width/height, " +
		"viewports sized from a square render target, or a quad scaled on one axis only all " +
		"resample the image anisotropically around its centre.",
	BuggyExample: `float aspect = (float)height / (float)width;
proj = perspective(fov, aspect, near, far);`,
	FixedExample: `float aspect = (float)width / (float)height;
proj = perspective(fov, aspect, near, far);`,
	Params: []ParamSpec{
		modeParam("Swap Width/Height", "Force Square", "Stretch Horizontal", "Stretch Vertical"),
		rangeParam("amount", 1.5, 0.25, 4, 0.05, "Stretch factor for the stretch modes"),
	},
	apply: applyAspectRatio,
}

func applyAspectRatio(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	if w == 0 || h == 0 {
		return out
	}
	fw, fh := float64(w), float64(h)
	kx, ky := 1.0, 1.0
	switch p.Choice("mode") {
	case "Force Square":
		kx, ky = fw/fh, fw/fh
	case "Stretch Horizontal":
		kx = 1 / p.Float("amount")
	case "Stretch Vertical":
		ky = 1 / p.Float("amount")
	default:
		kx, ky = fw/fh, fh/fw
	}

	cx, cy := fw/2, fh/2
	black := [4]uint8{0, 0, 0, 255}
	for y := 0; y < h; y++ {
		sy := math.Floor(cy + (float64(y)+0.5-cy)*ky)
		for x := 0; x < w; x++ {
			sx := math.Floor(cx + (float64(x)+0.5-cx)*kx)
			if sx < 0 || sy < 0 || sx >= fw || sy >= fh {
				setPixel(out, x, y, black)
				continue
			}
			setPixel(out, x, y, pixelAt(src, int(sx), int(sy)))
		}
	}
	return out
}
