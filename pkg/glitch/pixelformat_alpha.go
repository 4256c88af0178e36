package glitch

import "image"

// backgrounds are the colors a premultiplied-alpha result is composited onto.
var backgrounds = map[string][3]float64{
	"White":   {1, 1, 1},
	"Black":   {0, 0, 0},
	"Gray":    {0.5, 0.5, 0.5},
	"Magenta": {1, 0, 1},
}

var premultipliedAlpha = &Transform{
	ID:       "premultiplied-alpha",
	Name:     "Premultiplied Alpha Confusion",
	Category: CategoryPixelFormat,
	Description: "Straight and premultiplied alpha are mixed up during compositing, " +
		"giving dark fringes or glowing halos around soft edges.",
	TechnicalDetails: "Premultiplied color stores rgb*a. Compositing it with the straight " +
		"formula multiplies by alpha twice and darkens translucent pixels; compositing straight " +
		"color with the premultiplied formula skips the multiply and brightens them. Saving " +
		"premultiplied data into a straight-alpha file bakes the darkening in.",
	BuggyExample: `// src already premultiplied
out.rgb = src.rgb * src.a + dst.rgb * (1.0 - src.a);`,
	FixedExample: `// premultiplied "over"
out.rgb = src.rgb + dst.rgb * (1.0 - src.a);`,
	Params: []ParamSpec{
		modeParam("Premultiplied treated as Straight", "Straight treated as Premultiplied", "Premultiplied saved as Straight"),
		enumParam("background", []string{"White", "Black", "Gray", "Magenta"}, "Color composited behind the image"),
	},
	apply: applyPremultipliedAlpha,
}

func applyPremultipliedAlpha(src *image.NRGBA, p Params) *image.NRGBA {
	mode := p.Choice("mode")
	bg := backgrounds[p.Choice("background")]
	return mapPixels(src, func(_, _ int, c [4]uint8) [4]uint8 {
		a := float64(c[3]) / 255
		var o [4]uint8
		for k := 0; k < 3; k++ {
			v := float64(c[k]) / 255
			switch mode {
			case "Straight treated as Premultiplied":
				o[k] = unitToByte(v + bg[k]*(1-a))
			case "Premultiplied saved as Straight":
				o[k] = unitToByte(v * a)
			default:
				premul := v * a
				o[k] = unitToByte(premul*a + bg[k]*(1-a))
			}
		}
		if mode == "Premultiplied saved as Straight" {
			o[3] = c[3]
		} else {
			o[3] = 255
		}
		return o
	})
}
