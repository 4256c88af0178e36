package glitch

import "image"

// ycbcrMatrix holds the luma weights that define a Y'CbCr color matrix.
type ycbcrMatrix struct {
	kr, kb float64
}

var (
	bt601 = ycbcrMatrix{kr: 0.299, kb: 0.114}
	bt709 = ycbcrMatrix{kr: 0.2126, kb: 0.0722}
)

// encode converts normalized RGB to Y' in [0,1] and Cb, Cr in [-0.5,0.5].
func (m ycbcrMatrix) encode(r, g, b float64) (y, cb, cr float64) {
	kg := 1 - m.kr - m.kb
	y = m.kr*r + kg*g + m.kb*b
	cb = (b - y) / (2 * (1 - m.kb))
	cr = (r - y) / (2 * (1 - m.kr))
	return y, cb, cr
}

// decode is the inverse of encode.
func (m ycbcrMatrix) decode(y, cb, cr float64) (r, g, b float64) {
	kg := 1 - m.kr - m.kb
	r = y + 2*(1-m.kr)*cr
	b = y + 2*(1-m.kb)*cb
	g = (y - m.kr*r - m.kb*b) / kg
	return r, g, b
}

// toLimitedRange squeezes full-range Y'CbCr into studio swing (16-235/240).
func toLimitedRange(y, cb, cr float64) (float64, float64, float64) {
	return 16.0/255 + y*219/255, cb * 224 / 255, cr * 224 / 255
}

// fromLimitedRange expands studio swing back to full range.
func fromLimitedRange(y, cb, cr float64) (float64, float64, float64) {
	return (y - 16.0/255) * 255 / 219, cb * 255 / 224, cr * 255 / 224
}

var yuvMismatch = &Transform{
	ID:       "yuv-mismatch",
	Name:     "YUV Matrix / Range Mismatch",
	Category: CategoryPixelFormat,
	Description: "Video frames are converted to RGB with the wrong color matrix or the " +
		"wrong value range: greens shift, skin tones drift and contrast is crushed or washed out.",
	TechnicalDetails: "HD video uses the BT.709 matrix, SD video BT.601; both usually store " +
		"limited-range values (Y' 16-235). Decoding with the other matrix skews hues, and " +
		"mixing up limited and full range stretches or flattens contrast.",
	BuggyExample: `// every frame decoded as SD, full range
rgb = yuv_to_rgb(frame, BT601, RANGE_FULL);`,
	FixedExample: `rgb = yuv_to_rgb(frame, frame->colorspace, frame->color_range);`,
	Params: []ParamSpec{
		modeParam(
			"BT.709 decoded as BT.601",
			"BT.601 decoded as BT.709",
			"Full Range decoded as Limited",
			"Limited Range decoded as Full",
			"Swapped Chroma",
		),
	},
	apply: applyYUVMismatch,
}

func applyYUVMismatch(src *image.NRGBA, p Params) *image.NRGBA {
	mode := p.Choice("mode")
	return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
		r := float64(c[0]) / 255
		g := float64(c[1]) / 255
		b := float64(c[2]) / 255
		switch mode {
		case "BT.601 decoded as BT.709":
			r, g, b = bt709.decode(bt601.encode(r, g, b))
		case "Full Range decoded as Limited":
			r, g, b = bt709.decode(fromLimitedRange(bt709.encode(r, g, b)))
		case "Limited Range decoded as Full":
			r, g, b = bt709.decode(toLimitedRange(bt709.encode(r, g, b)))
		case "Swapped Chroma":
			y, cb, cr := bt709.encode(r, g, b)
			r, g, b = bt709.decode(y, cr, cb)
		default:
			r, g, b = bt601.decode(bt709.encode(r, g, b))
		}
		return [4]uint8{unitToByte(r), unitToByte(g), unitToByte(b), c[3]}
	})
}
