package glitch

import (
	"image"
	"math"
)

var bitDepth = &Transform{
	ID:       "bit-depth",
	Name:     "Bit Depth Truncation",
	Category: CategoryPixelFormat,
	Description: "Color samples are squeezed into fewer bits than the source provides, " +
		"producing banding and posterized gradients.",
	TechnicalDetails: "Dropping low bits with a shift keeps only 2^bits levels. Without " +
		"rescaling back to the full range, the top level never reaches white and the image " +
		"darkens; truncation instead of rounding biases every value downward.",
	BuggyExample: `uint8_t r5 = r >> 3;          // 5-bit red
uint8_t back = r5 << 3;        // 0..248, never 255`,
	FixedExample: `uint8_t r5 = (r * 31 + 127) / 255;
uint8_t back = (r5 * 255 + 15) / 31;`,
	Params: []ParamSpec{
		rangeParam("bits", 4, 1, 8, 1, "Bits kept per channel"),
		modeParam("Truncate", "Round", "Truncate without Rescale"),
	},
	apply: applyBitDepth,
}

func applyBitDepth(src *image.NRGBA, p Params) *image.NRGBA {
	bits := clampInt(p.Int("bits"), 1, 8)
	mode := p.Choice("mode")
	levels := float64(int(1)<<bits - 1)
	shift := uint(8 - bits)
	mask := uint8(0xff << shift)

	quantize := func(v uint8) uint8 {
		switch mode {
		case "Round":
			return toByte(math.Round(float64(v)/255*levels) * 255 / levels)
		case "Truncate without Rescale":
			return v & mask
		default:
			return toByte(float64(v>>shift) * 255 / levels)
		}
	}
	return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
		return [4]uint8{quantize(c[0]), quantize(c[1]), quantize(c[2]), c[3]}
	})
}

var signedUnsigned = &Transform{
	ID:       "signed-unsigned",
	Name:     "Signed/Unsigned Mismatch",
	Category: CategoryPixelFormat,
	Description: "Bytes written as unsigned are read as signed (or the other way around). " +
		"Everything above the midpoint suddenly goes negative.",
	TechnicalDetails: "Reading 200 as int8 gives -56, which clamps to black, so highlights " +
		"collapse while shadows survive. Flipping the sign bit shifts values by 128 and " +
		"swaps the two halves of the range. Treating a signed normalized texture as unsigned " +
		"maps [-1,1] onto [0,1] without the bias.",
	BuggyExample: `int8_t v = (int8_t)pixels[i];     // data is uint8
float f = max(v / 127.0f, 0.0f);`,
	FixedExample: `uint8_t v = pixels[i];
float f = v / 255.0f;`,
	Params: []ParamSpec{
		modeParam("Unsigned read as Signed", "Signed read as Unsigned", "SNORM read as UNORM"),
	},
	apply: applySignedUnsigned,
}

func applySignedUnsigned(src *image.NRGBA, p Params) *image.NRGBA {
	mode := p.Choice("mode")
	convert := func(v uint8) uint8 {
		switch mode {
		case "Signed read as Unsigned":
			return v ^ 0x80
		case "SNORM read as UNORM":
			// [0,1] data decoded as [-1,1] then clamped
			return toByte((float64(v)/255*2 - 1) * 255)
		default:
			s := int8(v)
			return toByte(float64(s) * 255 / 127)
		}
	}
	return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
		return [4]uint8{convert(c[0]), convert(c[1]), convert(c[2]), c[3]}
	})
}

var gammaMismatch = &Transform{
	ID:       "gamma",
	Name:     "Gamma / sRGB Mismatch",
	Category: CategoryPixelFormat,
	Description: "Values are run through a transfer curve they were never encoded with, " +
		"or the curve is skipped where it was needed. Images turn murky or washed out.",
	TechnicalDetails: "Display values are gamma-encoded; lighting math must happen in linear " +
		"light. Decoding data that was already linear darkens mid-tones (128 becomes about 56 " +
		"at gamma 2.2), encoding twice lifts them, and forgetting to re-encode after a linear " +
		"pass leaves the image dark.",
	BuggyExample: `// texture already linear, but sampled as sRGB
glTexImage2D(GL_TEXTURE_2D, 0, GL_SRGB8_ALPHA8, ...);`,
	FixedExample: `// only color textures authored in sRGB get the sRGB format
glTexImage2D(GL_TEXTURE_2D, 0, isColor ? GL_SRGB8_ALPHA8 : GL_RGBA8, ...);`,
	Params: []ParamSpec{
		modeParam("Linear treated as sRGB", "sRGB treated as Linear", "Double Gamma", "Missing Gamma"),
		rangeParam("gamma", 2.2, 1.0, 3.0, 0.1, "Exponent of the transfer curve"),
	},
	apply: applyGammaMismatch,
}

func applyGammaMismatch(src *image.NRGBA, p Params) *image.NRGBA {
	mode := p.Choice("mode")
	gamma := p.Float("gamma")

	var lut [256]uint8
	for i := range lut {
		v := float64(i) / 255
		switch mode {
		case "sRGB treated as Linear":
			v = math.Pow(v, 1/gamma)
		case "Double Gamma":
			v = math.Pow(v, 1/(gamma*gamma))
		case "Missing Gamma":
			v = srgbToLinear(v)
		default:
			v = math.Pow(v, gamma)
		}
		lut[i] = unitToByte(v)
	}
	return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
		return [4]uint8{lut[c[0]], lut[c[1]], lut[c[2]], c[3]}
	})
}

// srgbToLinear is the exact piecewise sRGB decoding curve.
func srgbToLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

// linearToSRGB is the exact piecewise sRGB encoding curve.
func linearToSRGB(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, 1.0/2.4)*1.055 - 0.055
	}
	return x * 12.92
}
