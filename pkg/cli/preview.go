package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

// Terminal preview over the kitty graphics protocol or the iTerm2 inline
// image sequence (also understood by WezTerm, VSCode and others).
//
// backend selects the protocol: "kitty", "inline" or "auto" to guess from
// the environment.

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby", "Bobcat":
		return true
	}
	return os.Getenv("ITERM_SESSION_ID") != ""
}

// PreviewImage writes img to w as an inline terminal image.
func PreviewImage(w io.Writer, img image.Image, backend string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	if backend == "" || backend == "auto" {
		switch {
		case isInlineImageCapable():
			backend = "inline"
		case isKitty():
			backend = "kitty"
		default:
			return fmt.Errorf("no preview protocol matched")
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, "png"); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	size := computePreviewSize(img)
	slog.Debug("terminal preview", "backend", backend, "bytes", buf.Len(), "cols", size.Cols, "rows", size.Rows)

	switch backend {
	case "kitty":
		return sendKittyImage(w, buf.Bytes(), size)
	case "inline":
		return sendInlineImage(w, buf.Bytes(), size)
	default:
		return fmt.Errorf("unknown preview backend %q", backend)
	}
}

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int
	PixelHeight int
}

// computePreviewSize fits the image into at most 80x40 character cells,
// preserving its aspect ratio and never scaling up.
func computePreviewSize(img image.Image) PreviewSize {
	const (
		charW   = 8
		charH   = 16
		minCols = 6
		minRows = 3
		maxCols = 80
		maxRows = 40
	)
	w := max(1, img.Bounds().Dx())
	h := max(1, img.Bounds().Dy())

	scale := math.Min(1, math.Min(float64(maxCols*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)

	return PreviewSize{
		Cols:        cols,
		Rows:        rows,
		PixelWidth:  cols * charW,
		PixelHeight: rows * charH,
	}
}

// sendKittyImage transmits PNG data in base64 chunks of at most 4096 bytes.
// The first chunk carries the placement; q=2 suppresses terminal replies.
func sendKittyImage(w io.Writer, data []byte, size PreviewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096

	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// sendInlineImage emits the OSC 1337 inline file sequence.
func sendInlineImage(w io.Writer, data []byte, size PreviewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	meta := fmt.Sprintf("size=%d;width=%dpx;height=%dpx", len(data), size.PixelWidth, size.PixelHeight)
	_, err := io.WriteString(w, "\x1b]1337;File=name=preview.png;inline=1;"+meta+":"+enc+"\a\n")
	return err
}
