package glitch

import "image"

// levelTints colors each mip level in Visualize Levels mode, cycling past the end.
var levelTints = [][3]float64{
	{255, 0, 0},
	{255, 128, 0},
	{255, 255, 0},
	{0, 255, 0},
	{0, 255, 255},
	{0, 0, 255},
	{128, 0, 255},
	{255, 0, 255},
}

var mipmapLOD = &Transform{
	ID:       "mipmap-lod",
	Name:     "Mipmap LOD Selection",
	Category: CategoryCoordinates,
	Description: "The sampler picks the wrong mip level: too coarse and the texture turns to " +
		"mush, too fine and a minified texture shimmers with aliasing.",
	TechnicalDetails: "Each mip level halves the previous one with a box filter. The GPU picks " +
		"a level from screen-space derivatives plus any LOD bias. A large positive bias or " +
		"broken derivatives select blurry levels; missing mipmaps force level 0 and alias " +
		"badly when the texture is minified.",
	BuggyExample: `glTexParameterf(GL_TEXTURE_2D, GL_TEXTURE_LOD_BIAS, 2.0f);
// or: glGenerateMipmap never called, MIN_FILTER = GL_LINEAR`,
	FixedExample: `glGenerateMipmap(GL_TEXTURE_2D);
glTexParameteri(GL_TEXTURE_2D, GL_TEXTURE_MIN_FILTER, GL_LINEAR_MIPMAP_LINEAR);`,
	Params: []ParamSpec{
		modeParam("LOD Bias", "Always Finest", "Wrong Level", "Visualize Levels"),
		rangeParam("lodBias", 2, 0, 6, 1, "Mip levels added to the selection"),
	},
	apply: applyMipmapLOD,
}

func applyMipmapLOD(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	if w == 0 || h == 0 {
		return newBitmap(w, h)
	}
	bias := clampInt(p.Int("lodBias"), 0, 6)

	switch p.Choice("mode") {
	case "Always Finest":
		// the texture is drawn minified by 2^bias with no mip chain
		f := 1 << bias
		return remapPixels(src, func(x, y int) (int, int) {
			return (x * f) % w, (y * f) % h
		})
	case "Wrong Level", "Visualize Levels":
		levels := generateMipmaps(src)
		tint := p.Choice("mode") == "Visualize Levels"
		return resample(src, func(x, y int) [4]uint8 {
			lvl := min(len(levels)-1, y*len(levels)/h)
			c := sampleLevel(levels[lvl], x, y, w, h)
			if tint {
				t := levelTints[lvl%len(levelTints)]
				for k := 0; k < 3; k++ {
					c[k] = toByte((float64(c[k]) + t[k]) / 2)
				}
			}
			return c
		})
	default:
		levels := generateMipmaps(src)
		level := levels[min(bias, len(levels)-1)]
		return resample(src, func(x, y int) [4]uint8 {
			return sampleLevel(level, x, y, w, h)
		})
	}
}

// sampleLevel reads mip level lvl bilinearly at the position that output
// pixel (x,y) of a w x h image covers.
func sampleLevel(lvl *image.NRGBA, x, y, w, h int) [4]uint8 {
	lw, lh := dims(lvl)
	u := (float64(x)+0.5)*float64(lw)/float64(w) - 0.5
	v := (float64(y)+0.5)*float64(lh)/float64(h) - 0.5
	return sampleBilinear(lvl, u, v)
}
