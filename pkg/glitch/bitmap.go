package glitch

import (
	"image"
	"image/color"
	"math"
)

// ToBitmap returns src as a canonical bitmap: an *image.NRGBA anchored at the
// origin whose Pix holds exactly width*height packed pixels. A canonical
// *image.NRGBA is returned as is, since transforms never write to their
// input. Anything else is converted into a fresh buffer.
func ToBitmap(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if n, ok := src.(*image.NRGBA); ok {
		if n.Rect.Min == (image.Point{}) && n.Stride == 4*w && len(n.Pix) == 4*w*h {
			return n
		}
		out := newBitmap(w, h)
		for y := 0; y < h; y++ {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*w*4:(y+1)*w*4], n.Pix[i:i+w*4])
		}
		return out
	}
	out := newBitmap(w, h)
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.Pix[idx+0] = c.R
			out.Pix[idx+1] = c.G
			out.Pix[idx+2] = c.B
			out.Pix[idx+3] = c.A
			idx += 4
		}
	}
	return out
}

// CloneBitmap returns a copy of src with identical bounds.
func CloneBitmap(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// newBitmap allocates a zeroed w x h bitmap at the origin.
func newBitmap(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// dims returns the width and height of a canonical bitmap.
func dims(img *image.NRGBA) (int, int) {
	return img.Rect.Dx(), img.Rect.Dy()
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapInt brings v into [0,n) using a floored modulo. n must be positive.
func wrapInt(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// toByte rounds v to the nearest integer and clamps it to [0,255].
func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// unitToByte maps a normalized [0,1] value to a byte.
func unitToByte(v float64) uint8 {
	return toByte(v * 255)
}

// pixelAt returns the four channel samples of (x,y) with coordinates clamped
// to the image.
func pixelAt(img *image.NRGBA, x, y int) [4]uint8 {
	w, h := dims(img)
	x = clampInt(x, 0, w-1)
	y = clampInt(y, 0, h-1)
	i := (y*w + x) * 4
	return [4]uint8{img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

// setPixel stores c at (x,y). The caller guarantees (x,y) is inside img.
func setPixel(img *image.NRGBA, x, y int, c [4]uint8) {
	i := (y*img.Rect.Dx() + x) * 4
	img.Pix[i+0] = c[0]
	img.Pix[i+1] = c[1]
	img.Pix[i+2] = c[2]
	img.Pix[i+3] = c[3]
}

// mapPixels builds a new bitmap by running fn over every source pixel.
func mapPixels(src *image.NRGBA, fn func(x, y int, c [4]uint8) [4]uint8) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			c := fn(x, y, [4]uint8{src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]})
			out.Pix[i+0] = c[0]
			out.Pix[i+1] = c[1]
			out.Pix[i+2] = c[2]
			out.Pix[i+3] = c[3]
		}
	}
	return out
}

// remapPixels builds a new bitmap where every output pixel is copied from the
// source coordinate returned by fn. Coordinates are clamped before the read.
func remapPixels(src *image.NRGBA, fn func(x, y int) (int, int)) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := fn(x, y)
			setPixel(out, x, y, pixelAt(src, sx, sy))
		}
	}
	return out
}

// byteAt reads buf[i] with i wrapped into the buffer.
func byteAt(buf []uint8, i int) uint8 {
	return buf[wrapInt(i, len(buf))]
}
