package glitch

import "image"

var rgbRGBAConfusion = &Transform{
	ID:       "rgb-rgba-confusion",
	Name:     "RGB/RGBA Stride Confusion",
	Category: CategoryPixelFormat,
	Description: "The buffer is walked with the wrong number of bytes per pixel, so every " +
		"pixel drifts further from its true channel boundary.",
	TechnicalDetails: "A 4-byte RGBA buffer read as 3-byte RGB consumes only three quarters " +
		"of each row per output row; the picture repeats and shears. The reverse case pulls the " +
		"alpha sample from the next pixel's red byte.",
	BuggyExample: `for (int i = 0; i < w * h; i++) {
    out[i].r = buf[i * 3 + 0];   // buffer is RGBA!
    out[i].g = buf[i * 3 + 1];
    out[i].b = buf[i * 3 + 2];
}`,
	FixedExample: `const int bpp = 4; // match the upload format
for (int i = 0; i < w * h; i++) {
    out[i].r = buf[i * bpp + 0];
    out[i].g = buf[i * bpp + 1];
    out[i].b = buf[i * bpp + 2];
}`,
	Params: []ParamSpec{
		modeParam("RGBA read as RGB", "RGB read as RGBA"),
		boolParam("forceOpaque", false, "Ignore the scrambled alpha when reading as RGBA"),
	},
	apply: applyRGBRGBAConfusion,
}

func applyRGBRGBAConfusion(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	n := w * h
	switch p.Choice("mode") {
	case "RGB read as RGBA":
		packed := packRGB(src)
		forceOpaque := p.Bool("forceOpaque")
		for i := 0; i < n; i++ {
			o := i * 4
			for k := 0; k < 4; k++ {
				out.Pix[o+k] = byteAt(packed, i*4+k)
			}
			if forceOpaque {
				out.Pix[o+3] = 255
			}
		}
	default:
		for i := 0; i < n; i++ {
			o := i * 4
			for k := 0; k < 3; k++ {
				out.Pix[o+k] = byteAt(src.Pix, i*3+k)
			}
			out.Pix[o+3] = 255
		}
	}
	return out
}

// packRGB drops the alpha channel, returning a tightly packed 3-byte buffer.
func packRGB(src *image.NRGBA) []uint8 {
	w, h := dims(src)
	packed := make([]uint8, w*h*3)
	for i := 0; i < w*h; i++ {
		copy(packed[i*3:i*3+3], src.Pix[i*4:i*4+3])
	}
	return packed
}

var bgrSwap = &Transform{
	ID:       "bgr-swap",
	Name:     "RGB/BGR Channel Swap",
	Category: CategoryPixelFormat,
	Description: "Red and blue trade places: skies turn orange and skin turns blue. " +
		"The classic symptom of mixing BGR APIs (Windows DIBs, OpenCV) with RGB ones.",
	TechnicalDetails: "The byte layout is identical in size, so nothing crashes; only the " +
		"interpretation of channel 0 and channel 2 differs between producer and consumer.",
	BuggyExample: `// OpenCV hands out BGR, the texture expects RGB
glTexImage2D(GL_TEXTURE_2D, 0, GL_RGB, w, h, 0,
             GL_RGB, GL_UNSIGNED_BYTE, mat.data);`,
	FixedExample: `glTexImage2D(GL_TEXTURE_2D, 0, GL_RGB, w, h, 0,
             GL_BGR, GL_UNSIGNED_BYTE, mat.data);`,
	Params: []ParamSpec{
		modeParam("RGB to BGR", "Swap R/G", "Swap G/B"),
	},
	apply: applyBGRSwap,
}

func applyBGRSwap(src *image.NRGBA, p Params) *image.NRGBA {
	mode := p.Choice("mode")
	return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
		switch mode {
		case "Swap R/G":
			return [4]uint8{c[1], c[0], c[2], c[3]}
		case "Swap G/B":
			return [4]uint8{c[0], c[2], c[1], c[3]}
		default:
			return [4]uint8{c[2], c[1], c[0], c[3]}
		}
	})
}

var channelOrder = &Transform{
	ID:       "channel-order",
	Name:     "ARGB/ABGR/BGRA Order Mismatch",
	Category: CategoryPixelFormat,
	Description: "Four-channel data is decoded with a different channel order than it was " +
		"encoded with. Alpha lands in a color channel and a color lands in alpha.",
	TechnicalDetails: "Packed 32-bit formats name channels from the most significant byte " +
		"(ARGB) or by memory order (RGBA). Confusing the two conventions rotates or reverses " +
		"all four channels, including alpha.",
	BuggyExample: `uint32_t px = *(uint32_t *)&rgba[i * 4];
uint8_t a = px >> 24;   // this is alpha only for ARGB
uint8_t r = px >> 16;`,
	FixedExample: `uint8_t r = rgba[i * 4 + 0];
uint8_t g = rgba[i * 4 + 1];
uint8_t b = rgba[i * 4 + 2];
uint8_t a = rgba[i * 4 + 3];`,
	Params: []ParamSpec{
		modeParam("RGBA read as ARGB", "RGBA read as ABGR", "RGBA read as BGRA", "ARGB read as RGBA"),
		boolParam("forceOpaque", false, "Display the result with full alpha"),
	},
	apply: applyChannelOrder,
}

func applyChannelOrder(src *image.NRGBA, p Params) *image.NRGBA {
	mode := p.Choice("mode")
	forceOpaque := p.Bool("forceOpaque")
	return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
		var o [4]uint8
		switch mode {
		case "RGBA read as ABGR":
			o = [4]uint8{c[3], c[2], c[1], c[0]}
		case "RGBA read as BGRA":
			o = [4]uint8{c[2], c[1], c[0], c[3]}
		case "ARGB read as RGBA":
			// stored as A,R,G,B and read back as R,G,B,A
			o = [4]uint8{c[3], c[0], c[1], c[2]}
		default:
			o = [4]uint8{c[1], c[2], c[3], c[0]}
		}
		if forceOpaque {
			o[3] = 255
		}
		return o
	})
}

var endianSwap = &Transform{
	ID:       "endian-swap",
	Name:     "Endianness Mismatch",
	Category: CategoryPixelFormat,
	Description: "Pixels packed into integers are written on one byte order and read on " +
		"the other, reversing the bytes inside each word.",
	TechnicalDetails: "A 32-bit word swap reverses all four channels; a 16-bit swap exchanges " +
		"R with G and B with A. Nibble swaps appear when 4-bit packed data is read with the " +
		"wrong nibble order.",
	BuggyExample: `uint32_t px;
fread(&px, 4, 1, f);          // file is big-endian
r = (px >> 24) & 0xff;`,
	FixedExample: `uint8_t b[4];
fread(b, 1, 4, f);
uint32_t px = (b[0] << 24) | (b[1] << 16) | (b[2] << 8) | b[3];`,
	Params: []ParamSpec{
		modeParam("32-bit Word Swap", "16-bit Halfword Swap", "Nibble Swap"),
	},
	apply: applyEndianSwap,
}

func applyEndianSwap(src *image.NRGBA, p Params) *image.NRGBA {
	mode := p.Choice("mode")
	return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
		switch mode {
		case "16-bit Halfword Swap":
			return [4]uint8{c[1], c[0], c[3], c[2]}
		case "Nibble Swap":
			return [4]uint8{swapNibbles(c[0]), swapNibbles(c[1]), swapNibbles(c[2]), c[3]}
		default:
			return [4]uint8{c[3], c[2], c[1], c[0]}
		}
	})
}

func swapNibbles(v uint8) uint8 {
	return v<<4 | v>>4
}
