package glitch

import (
	"fmt"
	"image"
	"time"
)

// Category groups transforms by the class of bug they simulate.
type Category string

const (
	CategoryPixelFormat  Category = "pixel-format"
	CategoryMemoryLayout Category = "memory-layout"
	CategoryCoordinates  Category = "coordinates"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryPixelFormat, CategoryMemoryLayout, CategoryCoordinates}

// Transform pairs the documentation of one graphics bug with the pure
// function that simulates it. BuggyExample and FixedExample are reference
// snippets shown to the reader; they are never executed.
type Transform struct {
	ID               string
	Name             string
	Category         Category
	Description      string
	TechnicalDetails string
	BuggyExample     string
	FixedExample     string
	Params           []ParamSpec

	apply func(src *image.NRGBA, p Params) *image.NRGBA
}

// Apply runs the transform on src. Missing parameters take their declared
// defaults. src is never modified; the result is a new bitmap with the same
// dimensions.
func (t *Transform) Apply(src *image.NRGBA, values Values) *image.NRGBA {
	bm := ToBitmap(src)
	if bm == nil {
		return nil
	}
	start := time.Now()
	resolved := resolve(t, values)
	out := t.apply(bm, newParams(t.Params, resolved))
	Logger().Debug("applied transform", "id", t.ID, "width", bm.Rect.Dx(), "height", bm.Rect.Dy(),
		"elapsed", time.Since(start))
	return out
}

// Param returns the schema entry called name.
func (t *Transform) Param(name string) (ParamSpec, bool) {
	for _, s := range t.Params {
		if s.Name == name {
			return s, true
		}
	}
	return ParamSpec{}, false
}

// resolve fills every parameter absent from partial with its schema default.
// Present values pass through untouched.
func resolve(t *Transform, partial Values) Values {
	out := make(Values, len(t.Params))
	for _, s := range t.Params {
		if v, ok := partial[s.Name]; ok && v != nil {
			out[s.Name] = v
			continue
		}
		out[s.Name] = s.Default
	}
	return out
}

// Apply decodes img into a bitmap and runs the transform registered under id
// in the default registry.
func Apply(img image.Image, id string, values Values) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	t, err := Default.Lookup(id)
	if err != nil {
		return nil, err
	}
	return t.Apply(ToBitmap(img), values), nil
}
