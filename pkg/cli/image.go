package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// encodable lists the formats SaveImage can write. webp decodes only.
var encodable = map[string]bool{"png": true, "jpeg": true, "gif": true, "bmp": true, "tiff": true}

// LoadImage decodes the image at path and reports its format name as
// registered with the image package ("png", "jpeg", "gif", "bmp", "tiff",
// "webp").
func LoadImage(path string) (image.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("could not decode %q: %w", path, err)
	}
	return img, format, nil
}

// FormatFromPath maps a file extension to an output format, or "" when the
// extension is not one SaveImage can write.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return ""
	}
}

// ResolveFormat picks the output format. "same" keeps srcFormat when it can
// be encoded and falls back to png otherwise.
func ResolveFormat(requested, srcFormat string) string {
	if requested != "" && requested != "same" {
		return requested
	}
	if encodable[srcFormat] {
		return srcFormat
	}
	return "png"
}

// extension returns the file extension written for format.
func extension(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "gif":
		return gif.Encode(w, img, nil)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestSpeed,
			BufferPool:       pngPool,
		}
		return enc.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// SaveImage encodes img to path. The data goes to a temporary file in the
// destination folder first, which is renamed over path only once encoding
// succeeded.
func SaveImage(img image.Image, path, format string) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	outFile, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", outFile.Name(), defErr)
		}
		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = Encode(outFile, img, format); err != nil {
		return fmt.Errorf("could not encode %s destination %q: %w", strings.ToUpper(format), path, err)
	}
	canRename = true
	return nil
}

// OutputPath derives "<dir>/<base>-<suffix><ext>" from a source file name.
func OutputPath(dir, srcPath, suffix, format string) string {
	base := filepath.Base(srcPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"-"+suffix+extension(format))
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
