package font

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/draw"

	intImage "github.com/gogpu/geyserpack/internal/image"
	"github.com/gogpu/geyserpack/internal/logging"
)

// LoadBlank loads the tile every exported frame is drawn onto.
func LoadBlank(path string) (*image.NRGBA, error) {
	img, err := intImage.Load(path)
	if err != nil {
		return nil, fmt.Errorf("font: load blank tile: %w", err)
	}
	return intImage.ToNRGBA(img), nil
}

// NewBlank returns a fully transparent width×height tile.
func NewBlank(width, height int) (*image.NRGBA, error) {
	img, err := intImage.NewTransparent(width, height)
	if err != nil {
		return nil, fmt.Errorf("font: blank tile: %w", err)
	}
	return img, nil
}

// FillBlank writes blank as the frame of every low byte of glyph id that has
// no file in dir yet, so the finished sheet always holds all 256 cells.
// Existing frames are left untouched. It returns the number of files written.
func FillBlank(dir, id string, blank image.Image) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("font: create %s: %w", dir, err)
	}

	var encoded bytes.Buffer
	if err := intImage.EncodePNG(&encoded, blank); err != nil {
		return 0, err
	}

	n := 0
	for low := range 256 {
		path := filepath.Join(dir, frameName(id, low))
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return n, fmt.Errorf("font: stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, encoded.Bytes(), 0o644); err != nil {
			return n, fmt.Errorf("font: write %s: %w", path, err)
		}
		n++
	}
	return n, nil
}

// Thumbnail shrinks img to fit inside maxW×maxH keeping its aspect ratio.
// Images that already fit are returned unchanged; it never enlarges.
func Thumbnail(img *image.NRGBA, maxW, maxH int) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Rect, draw.Src, nil)
	return dst
}

// Place draws frame onto a copy of blank. When a provider height h is known
// and 1 <= h < tile width and h < tile height, the frame is first shrunk to
// fit h×h. Frames covering more than half the tile in both directions are
// placed at the top-left corner; smaller ones are centered vertically at the
// left edge. Frame pixels replace the tile's pixels.
func Place(blank, frame *image.NRGBA, height int) *image.NRGBA {
	tw, th := blank.Rect.Dx(), blank.Rect.Dy()
	if height >= 1 && height < tw && height < th {
		frame = Thumbnail(frame, height, height)
	}

	fw, fh := frame.Rect.Dx(), frame.Rect.Dy()
	pos := blank.Rect.Min
	if !(fw > tw/2 && fh > th/2) {
		pos.Y += th/2 - fh/2
	}

	out := intImage.Clone(blank)
	intImage.Copy(out, pos, frame, frame.Rect)
	return out
}

// Export places every staged frame in srcDir onto blank and writes the
// result under the same name in dstDir. heights maps frame names to provider
// heights; frames without an entry keep their size. Frames that fail to
// decode are logged and skipped. It returns the number of frames written.
func Export(srcDir, dstDir string, blank *image.NRGBA, heights map[string]int) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("font: read %s: %w", srcDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	log := logging.Logger()
	n := 0
	for _, name := range names {
		img, err := intImage.Load(filepath.Join(srcDir, name))
		if err != nil {
			log.Warn("font: skipping frame", "file", name, "error", err)
			continue
		}
		out := Place(blank, intImage.ToNRGBA(img), heights[name])
		if err := intImage.SavePNG(filepath.Join(dstDir, name), out); err != nil {
			return n, fmt.Errorf("font: export %s: %w", name, err)
		}
		n++
	}
	return n, nil
}
