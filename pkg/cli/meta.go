package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/glitchlab/pkg/glitch"
)

// ValidationRule is a machine-friendly representation of the constraints
// that a client can check before invoking a transform.
type ValidationRule struct {
	Kind        glitch.ParamKind `json:"kind"`
	Min         *float64         `json:"min,omitempty"`
	Max         *float64         `json:"max,omitempty"`
	Step        float64          `json:"step,omitempty"`
	EnumOptions []string         `json:"enumOptions,omitempty"`
	Example     string           `json:"example,omitempty"`
	Hint        string           `json:"hint,omitempty"`
}

// parseBoolLikeToString accepts common truthy/falsy forms and returns "true"/"false" string.
func parseBoolLikeToString(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return "true", nil
	case "0", "f", "false", "n", "no", "off":
		return "false", nil
	default:
		return "", fmt.Errorf("invalid boolean: %q", s)
	}
}

// GenerateTooltip produces a help string for a transform and its parameters.
func GenerateTooltip(t *glitch.Transform) string {
	var sb strings.Builder
	if t.Description != "" {
		sb.WriteString(t.Description)
	} else {
		sb.WriteString("No description")
	}
	if len(t.Params) == 0 {
		sb.WriteString("\nNo parameters.")
		return sb.String()
	}
	sb.WriteString("\nParameters:\n")
	for _, p := range t.Params {
		var kind string
		switch p.Kind {
		case glitch.KindRange:
			kind = fmt.Sprintf("%s %s..%s", p.Kind, formatFloat(p.Min), formatFloat(p.Max))
		case glitch.KindEnum:
			kind = fmt.Sprintf("%s: %s", p.Kind, strings.Join(p.Options, " | "))
		default:
			kind = p.Kind.String()
		}
		fmt.Fprintf(&sb, "- %s (%s)", p.Name, kind)
		if p.Description != "" {
			sb.WriteString(": " + p.Description)
		}
		sb.WriteString(" (default: " + p.DefaultString() + ")\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRules creates a ValidationRule per parameter of t.
func GenerateValidationRules(t *glitch.Transform) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(t.Params))
	for _, p := range t.Params {
		r := ValidationRule{Kind: p.Kind, Hint: p.Description, Example: p.DefaultString()}
		switch p.Kind {
		case glitch.KindRange:
			lo, hi := p.Min, p.Max
			r.Min, r.Max, r.Step = &lo, &hi, p.Step
		case glitch.KindEnum:
			r.EnumOptions = p.Options
		}
		rules[p.Name] = r
	}
	return rules
}

// ParseAssignments turns "key=value" strings into parameter values for t.
// Values are parsed by the declared kind of the parameter. Unknown keys,
// unparsable numbers, values outside the declared range and unknown enum
// labels are reported as errors. Enum labels match case-insensitively.
func ParseAssignments(t *glitch.Transform, assignments []string) (glitch.Values, error) {
	rules := GenerateValidationRules(t)
	values := make(glitch.Values, len(assignments))
	for _, a := range assignments {
		key, raw, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		raw = strings.TrimSpace(raw)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected key=value", a)
		}
		vr, ok := rules[key]
		if !ok {
			return nil, fmt.Errorf("%s has no parameter %q", t.ID, key)
		}
		switch vr.Kind {
		case glitch.KindRange:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected number, got %q", key, raw)
			}
			if vr.Min != nil && f < *vr.Min {
				return nil, fmt.Errorf("parameter %s: %v < min %v", key, f, *vr.Min)
			}
			if vr.Max != nil && f > *vr.Max {
				return nil, fmt.Errorf("parameter %s: %v > max %v", key, f, *vr.Max)
			}
			values[key] = f
		case glitch.KindBoolean:
			bs, err := parseBoolLikeToString(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", key, err)
			}
			values[key] = bs == "true"
		case glitch.KindEnum:
			label, ok := matchOption(vr.EnumOptions, raw)
			if !ok {
				return nil, fmt.Errorf("parameter %s: %q is not one of %s", key, raw, strings.Join(vr.EnumOptions, ", "))
			}
			values[key] = label
		default:
			return nil, fmt.Errorf("parameter %s: unsupported kind %s", key, vr.Kind)
		}
	}
	return values, nil
}

// matchOption finds raw among options ignoring case. A 1-based index is
// accepted too, so "mode=2" picks the second option.
func matchOption(options []string, raw string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(o, raw) {
			return o, true
		}
	}
	if i, err := strconv.Atoi(raw); err == nil && i >= 1 && i <= len(options) {
		return options[i-1], true
	}
	return "", false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
