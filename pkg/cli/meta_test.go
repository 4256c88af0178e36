package cli

import (
	"strings"
	"testing"

	"github.com/Fepozopo/glitchlab/pkg/glitch"
)

func mustLookup(t *testing.T, id string) *glitch.Transform {
	t.Helper()
	tr, err := glitch.Default.Lookup(id)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", id, err)
	}
	return tr
}

func TestParseAssignments(t *testing.T) {
	tr := mustLookup(t, "off-by-one")
	v, err := ParseAssignments(tr, []string{"xOffset=-3", " yOffset = 2 ", "wrapEdges=yes"})
	if err != nil {
		t.Fatalf("ParseAssignments: %v", err)
	}
	if v["xOffset"] != -3.0 || v["yOffset"] != 2.0 {
		t.Fatalf("unexpected offsets: %v", v)
	}
	if v["wrapEdges"] != true {
		t.Fatalf("expected wrapEdges=true, got %v", v["wrapEdges"])
	}
}

func TestParseAssignmentsEnum(t *testing.T) {
	tr := mustLookup(t, "coordinate-flip")
	v, err := ParseAssignments(tr, []string{"mode=flip both"})
	if err != nil {
		t.Fatalf("ParseAssignments: %v", err)
	}
	if v["mode"] != "Flip Both" {
		t.Fatalf("expected canonical label, got %v", v["mode"])
	}
	v, err = ParseAssignments(tr, []string{"mode=2"})
	if err != nil {
		t.Fatalf("ParseAssignments by index: %v", err)
	}
	if v["mode"] != "Flip Horizontal" {
		t.Fatalf("expected second option, got %v", v["mode"])
	}
}

func TestParseAssignmentsErrors(t *testing.T) {
	tr := mustLookup(t, "off-by-one")
	cases := map[string][]string{
		"missing equals": {"xOffset"},
		"empty key":      {"=3"},
		"unknown key":    {"zOffset=1"},
		"not a number":   {"xOffset=abc"},
		"below min":      {"xOffset=-17"},
		"above max":      {"yOffset=17"},
		"bad boolean":    {"wrapEdges=maybe"},
		"unknown option": {"mode=Flip"},
		"index too big":  {"mode=9"},
	}
	flip := mustLookup(t, "coordinate-flip")
	for name, in := range cases {
		target := tr
		if strings.HasPrefix(in[0], "mode") {
			target = flip
		}
		if _, err := ParseAssignments(target, in); err == nil {
			t.Fatalf("%s: expected error for %v", name, in)
		}
	}
}

func TestGenerateTooltip(t *testing.T) {
	tip := GenerateTooltip(mustLookup(t, "uv-wrap"))
	for _, want := range []string{"Parameters:", "uvScale (range 0.5..4)", "mode (enum: Repeat | Mirror | Clamp | None)", "(default: Magenta)"} {
		if !strings.Contains(tip, want) {
			t.Fatalf("tooltip missing %q:\n%s", want, tip)
		}
	}

	bare := &glitch.Transform{ID: "x"}
	if got := GenerateTooltip(bare); got != "No description\nNo parameters." {
		t.Fatalf("unexpected tooltip for bare transform: %q", got)
	}
}

func TestGenerateValidationRules(t *testing.T) {
	rules := GenerateValidationRules(mustLookup(t, "gamma"))
	g, ok := rules["gamma"]
	if !ok {
		t.Fatal("missing rule for gamma")
	}
	if g.Min == nil || g.Max == nil || *g.Min != 1 || *g.Max != 3 || g.Step != 0.1 {
		t.Fatalf("unexpected range rule: %+v", g)
	}
	if g.Example != "2.2" {
		t.Fatalf("expected example 2.2, got %q", g.Example)
	}
	m := rules["mode"]
	if m.Kind != glitch.KindEnum || len(m.EnumOptions) != 4 {
		t.Fatalf("unexpected enum rule: %+v", m)
	}
}

func TestParseBoolLike(t *testing.T) {
	for in, want := range map[string]string{"1": "true", "On": "true", " no ": "false", "F": "false"} {
		got, err := parseBoolLikeToString(in)
		if err != nil || got != want {
			t.Fatalf("parseBoolLikeToString(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := parseBoolLikeToString("2"); err == nil {
		t.Fatal("expected error for 2")
	}
}
