package glitch

import (
	"image"
	"math"
)

var floatErrors = &Transform{
	ID:       "float-errors",
	Name:     "Floating-Point Errors",
	Category: CategoryPixelFormat,
	Description: "Shader math goes wrong in the ways floats go wrong: NaNs punch black " +
		"holes, overflowing integers wrap around, tiny values flush to zero and low " +
		"precision bands smooth gradients.",
	TechnicalDetails: "A NaN produced by 0/0 or normalize(vec3(0)) propagates through every " +
		"operation and usually resolves to black. Converting an HDR value to an integer " +
		"without saturation wraps modulo 256. Flush-to-zero hardware drops denormals, and " +
		"half floats keep only 10 mantissa bits, fewer still on mobile precision qualifiers.",
	BuggyExample: `vec3 n = normalize(v);            // v may be zero -> NaN
uint8_t out = (uint8_t)(hdr * 255); // wraps past 1.0`,
	FixedExample: `vec3 n = length(v) > 1e-6 ? normalize(v) : vec3(0, 0, 1);
uint8_t out = (uint8_t)clamp(hdr * 255.0f, 0.0f, 255.0f);`,
	Params: []ParamSpec{
		modeParam("NaN Holes", "Overflow Wrap", "Denormal Flush", "Half Precision Banding"),
		rangeParam("probability", 0.02, 0, 0.25, 0.005, "Fraction of pixels hit by NaN"),
		rangeParam("overflowScale", 1.5, 1, 4, 0.1, "Exposure multiplier before the unsaturated conversion"),
		rangeParam("threshold", 24, 0, 64, 1, "Channel values below this flush to zero"),
		rangeParam("mantissaBits", 3, 1, 10, 1, "Mantissa bits kept in linear light"),
	},
	apply: applyFloatErrors,
}

func applyFloatErrors(src *image.NRGBA, p Params) *image.NRGBA {
	switch p.Choice("mode") {
	case "Overflow Wrap":
		scale := p.Float("overflowScale")
		return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
			var o [4]uint8
			for k := 0; k < 3; k++ {
				o[k] = uint8(wrapInt(int(math.Round(float64(c[k])*scale)), 256))
			}
			o[3] = c[3]
			return o
		})
	case "Denormal Flush":
		threshold := uint8(clampInt(p.Int("threshold"), 0, 255))
		return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
			for k := 0; k < 3; k++ {
				if c[k] < threshold {
					c[k] = 0
				}
			}
			return c
		})
	case "Half Precision Banding":
		bits := clampInt(p.Int("mantissaBits"), 1, 10)
		var lut [256]uint8
		for i := range lut {
			lin := srgbToLinear(float64(i) / 255)
			lut[i] = unitToByte(linearToSRGB(reduceMantissa(lin, bits)))
		}
		return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
			return [4]uint8{lut[c[0]], lut[c[1]], lut[c[2]], c[3]}
		})
	default:
		probability := p.Float("probability")
		return mapPixels(src, func(x, y int, c [4]uint8) [4]uint8 {
			if hashFloat(x, y) < probability {
				return [4]uint8{0, 0, 0, 255}
			}
			return c
		})
	}
}

// reduceMantissa rounds v to a float with only bits of mantissa precision.
func reduceMantissa(v float64, bits int) float64 {
	if v == 0 {
		return 0
	}
	frac, exp := math.Frexp(v)
	scale := float64(int(1) << bits)
	return math.Ldexp(math.Round(frac*scale)/scale, exp)
}
