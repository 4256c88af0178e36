package cli

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/kong"

	"github.com/Fepozopo/glitchlab/pkg/glitch"
	"github.com/Fepozopo/glitchlab/pkg/parallel"
)

// ApplyCmd runs one transform over one file.
type ApplyCmd struct {
	ID      string   `arg:"" help:"Transform id (see 'glitchlab list')."`
	Input   string   `arg:"" type:"existingfile" help:"Source image."`
	Output  string   `short:"o" help:"Destination file. Defaults to <input>-<id>.<ext> next to the input."`
	Set     []string `short:"s" sep:"none" placeholder:"KEY=VALUE" help:"Parameter assignment, repeatable."`
	Format  string   `help:"Output format." enum:"same,png,jpeg,gif,bmp,tiff" default:"same" env:"GLITCHLAB_FORMAT"`
	Preview bool     `help:"Show the result inline in the terminal."`

	Transform *glitch.Transform `kong:"-"`
	Values    glitch.Values     `kong:"-"`
}

func (c *ApplyCmd) Validate(kctx *kong.Context) error {
	t, v, err := resolveTransform(c.ID, c.Set)
	if err != nil {
		return err
	}
	c.Transform, c.Values = t, v
	if c.Output != "" && c.Format == "same" {
		f := FormatFromPath(c.Output)
		if f == "" {
			return fmt.Errorf("cannot write %q: use a .png, .jpg, .gif, .bmp or .tiff extension, or pass --format", c.Output)
		}
		c.Format = f
	}
	return nil
}

func (c *ApplyCmd) Run(g *Globals) error {
	logger := slog.Default().With("file", c.Input, "transform", c.Transform.ID)

	img, srcFormat, err := LoadImage(c.Input)
	if err != nil {
		return err
	}
	out := c.Transform.Apply(glitch.ToBitmap(img), c.Values)

	format := ResolveFormat(c.Format, srcFormat)
	dest := c.Output
	if dest == "" {
		dest = OutputPath(filepath.Dir(c.Input), c.Input, c.Transform.ID, format)
	}
	if err := SaveImage(out, dest, format); err != nil {
		return err
	}
	logger.Info("wrote image", "dest", dest, "format", format)

	if c.Preview {
		if err := PreviewImage(os.Stdout, out, g.PreviewBackend); err != nil {
			logger.Warn("preview unavailable", "error", err)
		}
	}
	return nil
}

// BatchCmd runs one transform over every image in a folder.
type BatchCmd struct {
	ID     string   `arg:"" help:"Transform id (see 'glitchlab list')."`
	Scan   string   `help:"Source folder to scan." default:"."`
	Dest   string   `help:"Destination folder. Relative to the scan folder if not absolute." default:"glitched"`
	Set    []string `short:"s" sep:"none" placeholder:"KEY=VALUE" help:"Parameter assignment, repeatable."`
	Format string   `help:"Output format." enum:"same,png,jpeg,gif,bmp,tiff" default:"same" env:"GLITCHLAB_FORMAT"`

	Transform *glitch.Transform `kong:"-"`
	Values    glitch.Values     `kong:"-"`
}

func (c *BatchCmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir
	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	c.Transform, c.Values, err = resolveTransform(c.ID, c.Set)
	return err
}

func (c *BatchCmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}
	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, skippedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() || strings.HasPrefix(file.Name(), ".") {
			continue
		}
		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				img, srcFormat, err := LoadImage(filePath)
				if errors.Is(err, image.ErrFormat) {
					skippedCount.Add(1)
					logger.Debug("skipping file that is not an image")
					return
				}
				if err != nil {
					errCount.Add(1)
					logger.Error("could not load image", "error", err)
					return
				}
				out := c.Transform.Apply(glitch.ToBitmap(img), c.Values)
				format := ResolveFormat(c.Format, srcFormat)
				dest := OutputPath(c.Dest, fileName, c.Transform.ID, format)
				if err := SaveImage(out, dest, format); err != nil {
					errCount.Add(1)
					logger.Error("could not save image", "dest", dest, "error", err)
					return
				}
				logger.Debug("wrote image", "dest", dest)
				processedCount.Add(1)
			}
		}(file.Name()))
	}
	wait(true)

	return reportStats(processedCount.Load(), skippedCount.Load(), errCount.Load())
}

// GalleryCmd renders every transform of the catalog for one image.
type GalleryCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Source image."`
	Dest   string `help:"Destination folder." default:"gallery"`
	Format string `help:"Output format." enum:"png,jpeg,gif,bmp,tiff" default:"png"`
}

func (c *GalleryCmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	img, _, err := LoadImage(c.Input)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}
	return renderGallery(glitch.ToBitmap(img), glitch.Default.All(), c.Input, c.Dest, c.Format, worker, wait)
}

// renderGallery writes one file per transform. src is only read, so the
// transforms can share it across workers.
func renderGallery(src *image.NRGBA, transforms []*glitch.Transform, srcName, dest, format string,
	worker parallel.WorkerFunc, wait parallel.WaitFunc,
) error {
	var processedCount, errCount atomic.Uint64
	for _, t := range transforms {
		worker(func() {
			path := OutputPath(dest, srcName, t.ID, format)
			if err := SaveImage(t.Apply(src, nil), path, format); err != nil {
				errCount.Add(1)
				slog.Error("could not save image", "transform", t.ID, "dest", path, "error", err)
				return
			}
			processedCount.Add(1)
		})
	}
	wait(true)

	return reportStats(processedCount.Load(), 0, errCount.Load())
}

func reportStats(processed, skipped, failed uint64) error {
	slog.Info("stats", "processed", processed, "skipped", skipped, "errors", failed, "total", processed+skipped+failed)
	if failed > 0 {
		return fmt.Errorf("error processing %d files", failed)
	}
	return nil
}

// resolveTransform looks up id and parses its parameter assignments.
func resolveTransform(id string, assignments []string) (*glitch.Transform, glitch.Values, error) {
	t, err := glitch.Default.Lookup(id)
	if err != nil {
		return nil, nil, err
	}
	values, err := ParseAssignments(t, assignments)
	if err != nil {
		return nil, nil, err
	}
	return t, values, nil
}
