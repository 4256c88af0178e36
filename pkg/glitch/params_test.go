package glitch

import "testing"

func TestParamsFloatCoalescing(t *testing.T) {
	specs := floatErrors.Params
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0.02},
		{"0.1", 0.1},
		{0.2, 0.2},
		{float32(0.25), 0.25},
		{int64(0), 0},
		{"not a number", 0.02},
		{true, 0.02},
		{5.0, 0.25},
		{-1, 0},
	}
	for _, c := range cases {
		p := newParams(specs, Values{"probability": c.in})
		if got := p.Float("probability"); got != c.want {
			t.Fatalf("Float(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParamsInt(t *testing.T) {
	p := newParams(bitDepth.Params, Values{"bits": 2.6})
	if got := p.Int("bits"); got != 3 {
		t.Fatalf("Int rounded to %d", got)
	}
	p = newParams(bitDepth.Params, Values{"bits": 99})
	if got := p.Int("bits"); got != 8 {
		t.Fatalf("Int clamped to %d", got)
	}
}

func TestParamsBool(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{true, true},
		{"true", true},
		{"0", false},
		{1, true},
		{0.0, false},
		{"sometimes", false},
		{nil, false},
	}
	for _, c := range cases {
		p := newParams(offByOne.Params, Values{"wrapEdges": c.in})
		if got := p.Bool("wrapEdges"); got != c.want {
			t.Fatalf("Bool(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	p := newParams(halfTexel.Params, Values{"bilinear": "garbage"})
	if !p.Bool("bilinear") {
		t.Fatal("unparseable bool should fall back to the default true")
	}
}

func TestParamsChoice(t *testing.T) {
	cases := map[any]string{
		"Flip Both":       "Flip Both",
		"  flip both ":    "Flip Both",
		"FLIP HORIZONTAL": "Flip Horizontal",
		"Flip Diagonal":   "Flip Vertical",
		42:                "Flip Vertical",
	}
	for in, want := range cases {
		p := newParams(coordinateFlip.Params, Values{"mode": in})
		if got := p.Choice("mode"); got != want {
			t.Fatalf("Choice(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParamSpecDefaultString(t *testing.T) {
	s, ok := uvWrap.Param("uvScale")
	if !ok || s.DefaultString() != "2" {
		t.Fatalf("uvScale default string %q", s.DefaultString())
	}
	s, _ = halfTexel.Param("bilinear")
	if s.DefaultString() != "true" {
		t.Fatalf("bilinear default string %q", s.DefaultString())
	}
	s, _ = uvWrap.Param("sentinel")
	if s.DefaultString() != "Magenta" || s.Kind.String() != "enum" {
		t.Fatalf("sentinel %q %s", s.DefaultString(), s.Kind)
	}
	if _, ok := uvWrap.Param("nope"); ok {
		t.Fatal("unexpected param")
	}
}
