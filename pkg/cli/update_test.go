package cli

import (
	"testing"

	"github.com/blang/semver"
)

func TestNeedsUpdate(t *testing.T) {
	latest := semver.MustParse("1.2.0")
	cases := []struct {
		current string
		want    bool
	}{
		{"1.1.9", true},
		{"v1.1.0", true},
		{"1.2.0", false},
		{"v1.2", false},
		{"1.3.0", false},
		{"dev", true},
	}
	for _, c := range cases {
		if got := needsUpdate(c.current, latest); got != c.want {
			t.Fatalf("needsUpdate(%q, %s) = %v, want %v", c.current, latest, got, c.want)
		}
	}
}
