package glitch

import (
	"errors"
	"testing"
)

func TestCatalogIDsUnique(t *testing.T) {
	all := Default.All()
	if len(all) != 23 {
		t.Fatalf("expected 23 transforms, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, tr := range all {
		if tr.ID == "" {
			t.Fatalf("transform %q has empty id", tr.Name)
		}
		if seen[tr.ID] {
			t.Fatalf("duplicate id %q", tr.ID)
		}
		seen[tr.ID] = true
	}
}

func TestListByCategory(t *testing.T) {
	total := 0
	for _, c := range Categories {
		list := Default.ListByCategory(c)
		if len(list) == 0 {
			t.Fatalf("category %s is empty", c)
		}
		for _, tr := range list {
			if tr.Category != c {
				t.Fatalf("%s listed under %s but declares %s", tr.ID, c, tr.Category)
			}
		}
		total += len(list)
	}
	if total != len(Default.All()) {
		t.Fatalf("categories cover %d transforms, registry has %d", total, len(Default.All()))
	}
	if got := Default.ListByCategory("no-such-category"); len(got) != 0 {
		t.Fatalf("unexpected transforms for unknown category: %d", len(got))
	}
	want := []int{11, 5, 7}
	for i, c := range Categories {
		if n := len(Default.ListByCategory(c)); n != want[i] {
			t.Fatalf("category %s: expected %d transforms, got %d", c, want[i], n)
		}
	}
}

func TestLookup(t *testing.T) {
	tr, ok := Default.Get("bgr-swap")
	if !ok || tr.ID != "bgr-swap" {
		t.Fatalf("Get(bgr-swap) = %v, %v", tr, ok)
	}
	if _, ok := Default.Get("nope"); ok {
		t.Fatal("Get returned a transform for an unknown id")
	}
	_, err := Default.Lookup("nope")
	if !errors.Is(err, ErrUnknownTransform) {
		t.Fatalf("expected ErrUnknownTransform, got %v", err)
	}
	if _, err := Apply(newGradient(2, 2), "nope", nil); !errors.Is(err, ErrUnknownTransform) {
		t.Fatalf("Apply: expected ErrUnknownTransform, got %v", err)
	}
}

func TestNewRegistryDuplicate(t *testing.T) {
	_, err := NewRegistry([]*Transform{bgrSwap, offByOne, bgrSwap})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustRegistry did not panic on duplicate id")
		}
	}()
	MustRegistry([]*Transform{bgrSwap, bgrSwap})
}

func TestIDsOrder(t *testing.T) {
	ids := Default.IDs()
	if ids[0] != "rgb-rgba-confusion" {
		t.Fatalf("first id = %q", ids[0])
	}
	if ids[len(ids)-1] != "mipmap-lod" {
		t.Fatalf("last id = %q", ids[len(ids)-1])
	}
}

func TestSchemasWellFormed(t *testing.T) {
	for _, tr := range Default.All() {
		if tr.Name == "" || tr.Description == "" || tr.TechnicalDetails == "" {
			t.Fatalf("%s: missing documentation", tr.ID)
		}
		if tr.BuggyExample == "" || tr.FixedExample == "" {
			t.Fatalf("%s: missing code examples", tr.ID)
		}
		names := map[string]bool{}
		for _, s := range tr.Params {
			if names[s.Name] {
				t.Fatalf("%s: duplicate param %q", tr.ID, s.Name)
			}
			names[s.Name] = true
			switch s.Kind {
			case KindRange:
				d, ok := s.Default.(float64)
				if !ok || d < s.Min || d > s.Max || s.Min >= s.Max {
					t.Fatalf("%s.%s: bad range default %v in [%v,%v]", tr.ID, s.Name, s.Default, s.Min, s.Max)
				}
			case KindBoolean:
				if _, ok := s.Default.(bool); !ok {
					t.Fatalf("%s.%s: boolean default is %T", tr.ID, s.Name, s.Default)
				}
			case KindEnum:
				d, ok := s.Default.(string)
				if !ok || len(s.Options) == 0 || d != s.Options[0] {
					t.Fatalf("%s.%s: enum default %v is not the first option", tr.ID, s.Name, s.Default)
				}
			}
		}
	}
}

func TestResolveParameters(t *testing.T) {
	tr, _ := Default.Get("off-by-one")
	got := Default.ResolveParameters(tr, Values{"xOffset": 3, "unknown": "x"})
	if got["xOffset"] != 3 {
		t.Fatalf("explicit value not passed through: %v", got["xOffset"])
	}
	if got["yOffset"] != 0.0 || got["wrapEdges"] != false {
		t.Fatalf("defaults not filled: %v", got)
	}
	if _, ok := got["unknown"]; ok {
		t.Fatal("unknown key leaked into resolved parameters")
	}
	if len(got) != len(tr.Params) {
		t.Fatalf("expected %d resolved params, got %d", len(tr.Params), len(got))
	}
}
