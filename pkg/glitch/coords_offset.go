package glitch

import "image"

var offByOne = &Transform{
	ID:       "off-by-one",
	Name:     "Off-by-One Pixel Shift",
	Category: CategoryCoordinates,
	Description: "A fencepost error shifts every read by a pixel or more. Content slides " +
		"sideways, and the edge either smears the last column or wraps the opposite one in.",
	TechnicalDetails: "Loops written as x <= width, indices computed from 1 instead of 0, or " +
		"a stray +1 when converting between inclusive and exclusive ranges all read the " +
		"neighbor of the intended texel. Whether the edge repeats or wraps depends on how the " +
		"buffer is addressed past its end.",
	BuggyExample: `for (int x = 1; x <= width; x++)
    out[x - 1] = in[x];`,
	FixedExample: `for (int x = 0; x < width; x++)
    out[x] = in[x];`,
	Params: []ParamSpec{
		rangeParam("xOffset", 1, -16, 16, 1, "Horizontal read offset in pixels"),
		rangeParam("yOffset", 0, -16, 16, 1, "Vertical read offset in pixels"),
		boolParam("wrapEdges", false, "Wrap reads past the edge to the opposite side"),
	},
	apply: applyOffByOne,
}

func applyOffByOne(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	if w == 0 || h == 0 {
		return newBitmap(w, h)
	}
	dx, dy := p.Int("xOffset"), p.Int("yOffset")
	wrap := p.Bool("wrapEdges")
	return remapPixels(src, func(x, y int) (int, int) {
		if wrap {
			return wrapInt(x+dx, w), wrapInt(y+dy, h)
		}
		return x + dx, y + dy
	})
}

var coordinateFlip = &Transform{
	ID:       "coordinate-flip",
	Name:     "Coordinate System Flip",
	Category: CategoryCoordinates,
	Description: "Two APIs disagree on where the origin is, so the image comes out upside " +
		"down, mirrored or both.",
	TechnicalDetails: "OpenGL puts the texture origin at the bottom-left, while Direct3D, " +
		"Vulkan, Metal and almost every image file put it at the top-left. Render targets " +
		"read back with glReadPixels arrive bottom-up, and handedness changes mirror the X axis.",
	BuggyExample: `glReadPixels(0, 0, w, h, GL_RGBA, GL_UNSIGNED_BYTE, pixels);
stbi_write_png("shot.png", w, h, 4, pixels, w * 4);`,
	FixedExample: `stbi_flip_vertically_on_write(1);
stbi_write_png("shot.png", w, h, 4, pixels, w * 4);`,
	Params: []ParamSpec{
		modeParam("Flip Vertical", "Flip Horizontal", "Flip Both"),
	},
	apply: applyCoordinateFlip,
}

func applyCoordinateFlip(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	mode := p.Choice("mode")
	flipX := mode == "Flip Horizontal" || mode == "Flip Both"
	flipY := mode == "Flip Vertical" || mode == "Flip Both"
	return remapPixels(src, func(x, y int) (int, int) {
		if flipX {
			x = w - 1 - x
		}
		if flipY {
			y = h - 1 - y
		}
		return x, y
	})
}
