package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fepozopo/glitchlab/pkg/glitch"
	"github.com/Fepozopo/glitchlab/pkg/parallel"
)

func TestWriteList(t *testing.T) {
	var buf bytes.Buffer
	if err := writeList(&buf, glitch.Default, ""); err != nil {
		t.Fatalf("writeList: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1+len(glitch.Default.All()) {
		t.Fatalf("expected header plus %d rows, got %d lines", len(glitch.Default.All()), len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.HasPrefix(lines[1], "rgb-rgba-confusion") {
		t.Fatalf("unexpected list start:\n%s", buf.String())
	}

	buf.Reset()
	if err := writeList(&buf, glitch.Default, glitch.CategoryMemoryLayout); err != nil {
		t.Fatalf("writeList: %v", err)
	}
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1+len(glitch.Default.ListByCategory(glitch.CategoryMemoryLayout)) {
		t.Fatalf("unexpected memory-layout listing:\n%s", buf.String())
	}
	for _, l := range lines[1:] {
		if !strings.HasSuffix(l, "memory-layout") {
			t.Fatalf("row from another category: %q", l)
		}
	}
}

func TestListCmdValidate(t *testing.T) {
	if err := (&ListCmd{Category: "coordinates"}).Validate(nil); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}
	if err := (&ListCmd{}).Validate(nil); err != nil {
		t.Fatalf("empty category rejected: %v", err)
	}
	if err := (&ListCmd{Category: "audio"}).Validate(nil); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestWriteShow(t *testing.T) {
	tr, _ := glitch.Default.Get("off-by-one")
	var buf bytes.Buffer
	if err := writeShow(&buf, tr); err != nil {
		t.Fatalf("writeShow: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"(off-by-one)", "Category: coordinates", "xOffset", "Buggy:\n    for (int x = 1;", "Fixed:\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestApplyCmd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "src.png")
	if err := SaveImage(newTestImage(), in, "png"); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	cmd := &ApplyCmd{ID: "coordinate-flip", Input: in, Set: []string{"mode=flip horizontal"}, Format: "same"}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := cmd.Run(&Globals{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	img, format, err := LoadImage(filepath.Join(dir, "src-coordinate-flip.png"))
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if format != "png" {
		t.Fatalf("expected png output, got %s", format)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0xffff {
		t.Fatalf("expected the blue pixel at the left edge, got %d %d %d", r, g, b)
	}
}

func TestApplyCmdValidateErrors(t *testing.T) {
	if err := (&ApplyCmd{ID: "nope"}).Validate(nil); err == nil {
		t.Fatal("expected unknown transform error")
	}
	if err := (&ApplyCmd{ID: "gamma", Set: []string{"gamma=9"}}).Validate(nil); err == nil {
		t.Fatal("expected out of range error")
	}
	cmd := &ApplyCmd{ID: "gamma", Output: "x.bmp", Format: "same"}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cmd.Format != "bmp" {
		t.Fatalf("expected format from output extension, got %s", cmd.Format)
	}

	for _, out := range []string{"x.webp", "x"} {
		if err := (&ApplyCmd{ID: "gamma", Output: out, Format: "same"}).Validate(nil); err == nil {
			t.Fatalf("expected error for output %q that cannot be encoded", out)
		}
	}
	cmd = &ApplyCmd{ID: "gamma", Output: "x", Format: "png"}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("explicit format with bare output name rejected: %v", err)
	}
}

func TestBatchCmd(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png"} {
		if err := SaveImage(newTestImage(), filepath.Join(dir, name), "png"); err != nil {
			t.Fatalf("SaveImage: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden"), []byte("skip me"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := &BatchCmd{ID: "bgr-swap", Scan: dir, Dest: "out", Format: "bmp"}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	pool := parallel.Start(2)
	if err := cmd.Run(pool.Do, pool.Wait); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, name := range []string{"a-bgr-swap.bmp", "b-bgr-swap.bmp"} {
		if _, err := os.Stat(filepath.Join(dir, "out", name)); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "out", "README-bgr-swap.bmp")); err == nil {
		t.Fatal("a text file was treated as an image")
	}

	// a png cut short is an image that fails to decode, not a file to skip
	var buf bytes.Buffer
	if err := Encode(&buf, newTestImage(), "png"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), buf.Bytes()[:40], 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	pool = parallel.Start(1)
	if err := cmd.Run(pool.Do, pool.Wait); err == nil {
		t.Fatal("expected an error for the truncated png")
	}
}

func TestBatchCmdValidateScan(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.png")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := (&BatchCmd{ID: "gamma", Scan: file, Dest: "out"}).Validate(nil); err == nil {
		t.Fatal("expected error when scanning a file")
	}
}

func TestRenderGallery(t *testing.T) {
	dir := t.TempDir()
	pool := parallel.Start(4)
	src := glitch.ToBitmap(newTestImage())
	if err := renderGallery(src, glitch.Default.All(), "photo.jpg", dir, "png", pool.Do, pool.Wait); err != nil {
		t.Fatalf("renderGallery: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != len(glitch.Default.All()) {
		t.Fatalf("expected %d gallery files, got %d", len(glitch.Default.All()), len(entries))
	}
	if _, err := os.Stat(filepath.Join(dir, "photo-mipmap-lod.png")); err != nil {
		t.Fatalf("missing gallery entry: %v", err)
	}
}
