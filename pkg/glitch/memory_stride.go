package glitch

import "image"

var strideMismatch = &Transform{
	ID:       "stride-mismatch",
	Name:     "Stride / Pitch Mismatch",
	Category: CategoryMemoryLayout,
	Description: "The byte distance between rows is computed differently by the code that " +
		"writes the buffer and the code that reads it. Each row starts a little further off " +
		"than the last, shearing the image diagonally.",
	TechnicalDetails: "GPU and driver allocations often pad rows to 64, 256 or more bytes, so " +
		"the pitch is not width*4. Reading row y at y*width*4 when the real pitch is larger " +
		"drifts by the padding every row; writing with the wrong pitch leaves gaps or lets " +
		"rows overwrite each other.",
	BuggyExample: `for (int y = 0; y < h; y++)
    memcpy(dst + y * w * 4, mapped.pData + y * w * 4, w * 4);`,
	FixedExample: `for (int y = 0; y < h; y++)
    memcpy(dst + y * w * 4, (uint8_t*)mapped.pData + y * mapped.RowPitch, w * 4);`,
	Params: []ParamSpec{
		modeParam("Reader Stride Wrong", "Writer Stride Wrong"),
		rangeParam("strideError", 8, -64, 64, 1, "Bytes added to the correct row pitch"),
	},
	apply: applyStrideMismatch,
}

func applyStrideMismatch(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	if len(src.Pix) == 0 {
		return out
	}
	row := 4 * w
	stride := max(1, row+p.Int("strideError"))

	if p.Choice("mode") == "Writer Stride Wrong" {
		// unwritten memory reads as opaque black
		for i := 3; i < len(out.Pix); i += 4 {
			out.Pix[i] = 255
		}
		for y := 0; y < h; y++ {
			for i := 0; i < row; i++ {
				dst := y*stride + i
				if dst >= len(out.Pix) {
					break
				}
				out.Pix[dst] = src.Pix[y*row+i]
			}
		}
		return out
	}

	for y := 0; y < h; y++ {
		for i := 0; i < row; i++ {
			out.Pix[y*row+i] = byteAt(src.Pix, y*stride+i)
		}
	}
	return out
}

var bmpPadding = &Transform{
	ID:       "bmp-padding",
	Name:     "BMP Row Padding",
	Category: CategoryMemoryLayout,
	Description: "24-bit BMP rows are padded to a multiple of four bytes. A loader that " +
		"forgets the padding (or adds it where there is none) slants the image and tints " +
		"it as channels slide across pixel boundaries.",
	TechnicalDetails: "A 24-bit row holds width*3 bytes, rounded up to the next multiple of 4. " +
		"Whenever width*3 is not already aligned, each row is off by 1 to 3 bytes, so the " +
		"error accumulates down the image. BMP also stores pixels as BGR, a second classic " +
		"mistake when the bytes are copied straight into an RGB buffer.",
	BuggyExample: `int rowSize = width * 3;
fread(row, 1, rowSize, f);`,
	FixedExample: `int rowSize = (width * 3 + 3) & ~3;
fread(row, 1, rowSize, f);`,
	Params: []ParamSpec{
		modeParam("Padding Ignored", "Unexpected Padding"),
		boolParam("swapBGR", false, "Also forget that BMP stores blue first"),
	},
	apply: applyBMPPadding,
}

func applyBMPPadding(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	if w == 0 || h == 0 {
		return out
	}
	packed := 3 * w
	padded := (packed + 3) &^ 3

	writeStride, readStride := padded, packed
	if p.Choice("mode") == "Unexpected Padding" {
		writeStride, readStride = packed, padded
	}

	file := make([]uint8, writeStride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := pixelAt(src, x, y)
			i := y*writeStride + 3*x
			file[i+0] = c[2]
			file[i+1] = c[1]
			file[i+2] = c[0]
		}
	}

	swap := p.Bool("swapBGR")
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*readStride + 3*x
			b, g, r := byteAt(file, i), byteAt(file, i+1), byteAt(file, i+2)
			if swap {
				r, b = b, r
			}
			setPixel(out, x, y, [4]uint8{r, g, b, 255})
		}
	}
	return out
}

var alignmentOffset = &Transform{
	ID:       "alignment-offset",
	Name:     "Alignment Offset",
	Category: CategoryMemoryLayout,
	Description: "Data is read a few bytes away from where it was written, either once for " +
		"the whole buffer or again at every block boundary. Colors cycle as channels shift " +
		"into their neighbors.",
	TechnicalDetails: "Uploads are often split into aligned chunks. If the reader skips header " +
		"bytes the writer never emitted, or each chunk is padded to an alignment the reader " +
		"does not know about, every byte is shifted and the error grows with each chunk.",
	BuggyExample: `// header is 54 bytes, data assumed to start at 56 for alignment
memcpy(pixels, file + 56, size);`,
	FixedExample: `memcpy(pixels, file + header.dataOffset, size);`,
	Params: []ParamSpec{
		modeParam("Per-Block Drift", "Constant Offset"),
		rangeParam("offset", 3, 0, 16, 1, "Bytes skipped"),
		rangeParam("blockSize", 1024, 16, 4096, 16, "Bytes per block in Per-Block Drift"),
	},
	apply: applyAlignmentOffset,
}

func applyAlignmentOffset(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	out := newBitmap(w, h)
	if len(src.Pix) == 0 {
		return out
	}
	offset := p.Int("offset")
	block := max(1, p.Int("blockSize"))
	drift := p.Choice("mode") != "Constant Offset"

	for i := range out.Pix {
		if i%4 == 3 {
			// alpha is never shifted
			out.Pix[i] = src.Pix[i]
			continue
		}
		shift := offset
		if drift {
			shift = (i / block) * offset
		}
		out.Pix[i] = byteAt(src.Pix, i+shift)
	}
	return out
}
