package sprite

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	intImage "github.com/gogpu/geyserpack/internal/image"
	"github.com/gogpu/geyserpack/internal/logging"
)

// Frame is one decoded character tile.
type Frame struct {
	// Name is the source file name the frame was decoded from.
	Name string

	// Image holds the pixels as non-premultiplied RGBA.
	Image *image.NRGBA
}

// Size returns the frame's pixel dimensions.
func (f Frame) Size() image.Point {
	return f.Image.Rect.Size()
}

// Collection is the ordered frame sequence of one glyph group.
type Collection struct {
	Glyph   string
	Dir     string
	Frames  []Frame
	Skipped []string // file names that failed to decode
}

// Collect decodes every regular file in dir in ascending filename order.
//
// Files that fail to decode are logged and skipped. If no file decodes,
// Collect returns an *EmptyInputError.
func Collect(glyph, dir string) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sprite: read frames for glyph %s: %w", glyph, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	c := &Collection{
		Glyph:  glyph,
		Dir:    dir,
		Frames: make([]Frame, 0, len(names)),
	}
	log := logging.Logger()

	for _, name := range names {
		path := filepath.Join(dir, name)
		img, err := intImage.Load(path)
		if err != nil {
			derr := &DecodeError{Path: path, Err: err}
			log.Warn("sprite: skipping frame", "glyph", glyph, "file", name, "error", derr)
			c.Skipped = append(c.Skipped, name)
			continue
		}
		c.Frames = append(c.Frames, Frame{Name: name, Image: intImage.ToNRGBA(img)})
	}

	if len(c.Frames) == 0 {
		return nil, &EmptyInputError{Glyph: glyph, Dir: dir, Skipped: len(c.Skipped)}
	}

	log.Debug("sprite: collected frames", "glyph", glyph, "frames", len(c.Frames), "skipped", len(c.Skipped))
	return c, nil
}
