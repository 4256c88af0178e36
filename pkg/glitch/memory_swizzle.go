package glitch

import "image"

var mortonSwizzle = &Transform{
	ID:       "morton-swizzle",
	Name:     "Morton (Z-Order) Swizzle",
	Category: CategoryMemoryLayout,
	Description: "Textures stored in Z-order are read as plain rows, or plain rows are read " +
		"as if they were Z-ordered. The picture breaks into a fractal of repeating " +
		"quarter-size copies.",
	TechnicalDetails: "Consoles and GPUs store textures swizzled so that neighbors in 2D stay " +
		"close in memory: the address is the bits of x and y interleaved. Dumping that memory " +
		"without unswizzling scatters every 2x2, 4x4 and 8x8 quad along a row.",
	BuggyExample: `// raw GPU memory treated as linear
memcpy(image, texture_memory, w * h * 4);`,
	FixedExample: `for (uint32_t y = 0; y < h; y++)
    for (uint32_t x = 0; x < w; x++)
        image[y * w + x] = texture_memory[morton(x, y)];`,
	Params: []ParamSpec{
		modeParam("Swizzled read as Linear", "Linear read as Swizzled"),
	},
	apply: applyMortonSwizzle,
}

func applyMortonSwizzle(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	if w == 0 || h == 0 {
		return newBitmap(w, h)
	}
	if p.Choice("mode") == "Linear read as Swizzled" {
		return remapPixels(src, func(x, y int) (int, int) {
			i := int(mortonEncode(uint32(x), uint32(y)) % uint32(w*h))
			return i % w, i / w
		})
	}
	return remapPixels(src, func(x, y int) (int, int) {
		sx, sy := mortonDecode(uint32(y*w + x))
		return int(sx) % w, int(sy) % h
	})
}

var tileSwizzle = &Transform{
	ID:       "tile-swizzle",
	Name:     "Tiled Layout Confusion",
	Category: CategoryMemoryLayout,
	Description: "Memory organized in small square tiles is read as ordinary rows, or the " +
		"other way around. The image is chopped into a grid of short smeared strips.",
	TechnicalDetails: "Tiled layouts store each TxT tile contiguously, tiles in row-major " +
		"order. A linear reader sees T rows of one tile packed into the first T*T pixels of " +
		"a scanline. Interlaced formats store even rows first and odd rows after them, so a " +
		"reader that ignores interlacing shows two squashed copies.",
	BuggyExample: `uint32_t addr = y * width + x;   // surface is TILE_8x8`,
	FixedExample: `uint32_t tilesPerRow = (width + 7) / 8;
uint32_t addr = ((y / 8) * tilesPerRow + x / 8) * 64 + (y % 8) * 8 + x % 8;`,
	Params: []ParamSpec{
		modeParam(
			"8x8 Tiles read as Linear",
			"4x4 Tiles read as Linear",
			"Linear read as 8x8 Tiles",
			"Linear read as 4x4 Tiles",
			"Row Interleave",
		),
	},
	apply: applyTileSwizzle,
}

func applyTileSwizzle(src *image.NRGBA, p Params) *image.NRGBA {
	w, h := dims(src)
	if w == 0 || h == 0 {
		return newBitmap(w, h)
	}
	switch mode := p.Choice("mode"); mode {
	case "Row Interleave":
		half := (h + 1) / 2
		return remapPixels(src, func(x, y int) (int, int) {
			if y < half {
				return x, 2 * y
			}
			return x, 2*(y-half) + 1
		})
	case "Linear read as 8x8 Tiles", "Linear read as 4x4 Tiles":
		t := 8
		if mode == "Linear read as 4x4 Tiles" {
			t = 4
		}
		return remapPixels(src, func(x, y int) (int, int) {
			i := tiledAddress(x, y, w, t) % (w * h)
			return i % w, i / w
		})
	default:
		t := 8
		if mode == "4x4 Tiles read as Linear" {
			t = 4
		}
		return remapPixels(src, func(x, y int) (int, int) {
			sx, sy := tiledCoords(y*w+x, w, t)
			return sx % w, sy % h
		})
	}
}

// tiledAddress returns the pixel index of (x,y) in a surface of width w
// stored as row-major t x t tiles.
func tiledAddress(x, y, w, t int) int {
	tilesPerRow := (w + t - 1) / t
	tile := (y/t)*tilesPerRow + x/t
	return tile*t*t + (y%t)*t + x%t
}

// tiledCoords is the inverse of tiledAddress.
func tiledCoords(addr, w, t int) (int, int) {
	tilesPerRow := (w + t - 1) / t
	tile, within := addr/(t*t), addr%(t*t)
	return (tile%tilesPerRow)*t + within%t, (tile/tilesPerRow)*t + within/t
}
