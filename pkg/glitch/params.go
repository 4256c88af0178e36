package glitch

import (
	"math"
	"strconv"
	"strings"
)

// ParamKind is the declared kind of a transform parameter.
type ParamKind int

const (
	// KindRange is a numeric value between Min and Max.
	KindRange ParamKind = iota
	// KindBoolean is an on/off toggle.
	KindBoolean
	// KindEnum is one label out of an ordered set of options.
	KindEnum
)

// String returns the lowercase name of the kind.
func (k ParamKind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindBoolean:
		return "boolean"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ParamSpec declares one parameter of a transform. It drives default
// resolution and lets a front end generate a control for the parameter.
type ParamSpec struct {
	Name        string
	Kind        ParamKind
	Default     any // float64, bool or string depending on Kind
	Min         float64
	Max         float64
	Step        float64
	Options     []string
	Description string
}

// DefaultString renders the default value for help text.
func (s ParamSpec) DefaultString() string {
	switch v := s.Default.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	default:
		return ""
	}
}

func rangeParam(name string, def, min, max, step float64, desc string) ParamSpec {
	return ParamSpec{Name: name, Kind: KindRange, Default: def, Min: min, Max: max, Step: step, Description: desc}
}

func boolParam(name string, def bool, desc string) ParamSpec {
	return ParamSpec{Name: name, Kind: KindBoolean, Default: def, Description: desc}
}

func enumParam(name string, options []string, desc string) ParamSpec {
	return ParamSpec{Name: name, Kind: KindEnum, Default: options[0], Options: options, Description: desc}
}

// modeParam is the "mode" enum most transforms use to pick a bug variant.
func modeParam(options ...string) ParamSpec {
	return enumParam("mode", options, "Which variant of the bug to simulate")
}

// Values maps parameter names to number, bool or string values. Unknown
// keys are ignored; missing keys fall back to the schema default.
type Values map[string]any

// Params is the resolved, read-only parameter view handed to a transform.
// Its accessors never fail: a value of the wrong kind degrades to the
// declared default, numbers are clamped to the declared range and unknown
// enum labels become the default label.
type Params struct {
	values Values
	specs  []ParamSpec
}

func newParams(specs []ParamSpec, values Values) Params {
	return Params{values: values, specs: specs}
}

func (p Params) spec(name string) (ParamSpec, bool) {
	for _, s := range p.specs {
		if s.Name == name {
			return s, true
		}
	}
	return ParamSpec{}, false
}

// Float returns a range parameter.
func (p Params) Float(name string) float64 {
	s, _ := p.spec(name)
	def, _ := s.Default.(float64)
	v, ok := toFloat(p.values[name])
	if !ok {
		if _, present := p.values[name]; present {
			Logger().Warn("parameter coalesced to default", "param", name, "value", p.values[name])
		}
		v = def
	}
	if s.Min < s.Max {
		v = math.Max(s.Min, math.Min(s.Max, v))
	}
	return v
}

// Int returns a range parameter rounded to the nearest integer.
func (p Params) Int(name string) int {
	return int(math.Round(p.Float(name)))
}

// Bool returns a boolean parameter.
func (p Params) Bool(name string) bool {
	s, _ := p.spec(name)
	def, _ := s.Default.(bool)
	switch v := p.values[name].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	default:
		if f, ok := toFloat(v); ok {
			return f != 0
		}
	}
	return def
}

// Choice returns an enum parameter as one of its declared option labels.
// Labels match case-insensitively.
func (p Params) Choice(name string) string {
	s, _ := p.spec(name)
	def, _ := s.Default.(string)
	v, ok := p.values[name].(string)
	if !ok {
		return def
	}
	for _, o := range s.Options {
		if strings.EqualFold(o, strings.TrimSpace(v)) {
			return o
		}
	}
	Logger().Warn("unknown option coalesced to default", "param", name, "value", v, "default", def)
	return def
}

// toFloat converts the numeric kinds a caller may reasonably pass.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
