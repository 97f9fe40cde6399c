package sprite

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/geyserpack/internal/logging"
)

// tileColor returns a distinct opaque color for frame i.
func tileColor(i int) color.NRGBA {
	return color.NRGBA{R: uint8(i), G: uint8(255 - i), B: uint8(i * 7), A: 255}
}

func solidFrame(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// captureLogs routes the shared logger into a buffer for the test duration.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.Set(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { logging.Set(nil) })
	return &buf
}

func framesOf(imgs ...*image.NRGBA) []Frame {
	frames := make([]Frame, len(imgs))
	for i, img := range imgs {
		frames[i] = Frame{Name: "f", Image: img}
	}
	return frames
}
