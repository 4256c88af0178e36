package cli

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func newTestImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(0, 1, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(2, 1, color.NRGBA{128, 128, 128, 255})
	return img
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := newTestImage()
	for _, format := range []string{"png", "jpeg", "gif", "bmp", "tiff"} {
		path := filepath.Join(dir, "out"+extension(format))
		if err := SaveImage(src, path, format); err != nil {
			t.Fatalf("SaveImage(%s): %v", format, err)
		}
		img, got, err := LoadImage(path)
		if err != nil {
			t.Fatalf("LoadImage(%s): %v", format, err)
		}
		if got != format {
			t.Fatalf("expected format %s, got %s", format, got)
		}
		if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
			t.Fatalf("%s: unexpected bounds %v", format, img.Bounds())
		}
	}

	img, _, err := LoadImage(filepath.Join(dir, "out.png"))
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	for y := range 2 {
		for x := range 3 {
			want := src.NRGBAAt(x, y)
			got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if got != want {
				t.Fatalf("png pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 files and no temporaries, got %d", len(entries))
	}
}

func TestSaveImageUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xyz")
	if err := SaveImage(newTestImage(), path, "xyz"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected failed save to leave nothing behind, found %d files", len(entries))
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := LoadImage(junk); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]string{
		"a.PNG":        "png",
		"b.jpg":        "jpeg",
		"c.jpeg":       "jpeg",
		"d.gif":        "gif",
		"e.bmp":        "bmp",
		"f.tif":        "tiff",
		"g.tiff":       "tiff",
		"h.webp":       "",
		"no-extension": "",
	}
	for in, want := range cases {
		if got := FormatFromPath(in); got != want {
			t.Fatalf("FormatFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveFormat(t *testing.T) {
	cases := []struct{ requested, src, want string }{
		{"same", "jpeg", "jpeg"},
		{"same", "webp", "png"},
		{"", "bmp", "bmp"},
		{"tiff", "png", "tiff"},
	}
	for _, c := range cases {
		if got := ResolveFormat(c.requested, c.src); got != c.want {
			t.Fatalf("ResolveFormat(%q, %q) = %q, want %q", c.requested, c.src, got, c.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("out", filepath.Join("photos", "cat.jpeg"), "coordinate-flip", "jpeg")
	if want := filepath.Join("out", "cat-coordinate-flip.jpg"); got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}
	if got := OutputPath("", "cat", "gamma", "png"); got != "cat-gamma.png" {
		t.Fatalf("OutputPath without extension = %q", got)
	}
}
