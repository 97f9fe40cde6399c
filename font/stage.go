package font

import (
	"fmt"
	"image"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	intImage "github.com/gogpu/geyserpack/internal/image"
	"github.com/gogpu/geyserpack/internal/logging"
)

// DefaultTextureCacheSize is the number of decoded provider textures a
// Stager keeps by default.
const DefaultTextureCacheSize = 64

// Stager cuts planned characters out of their provider textures and writes
// one frame file per character. Decoded textures are cached, since a single
// texture commonly holds a whole row of characters. A Stager is safe for
// concurrent use.
type Stager struct {
	textures *lru.Cache[string, *image.NRGBA]
}

// NewStager creates a Stager caching up to cacheSize decoded textures.
func NewStager(cacheSize int) (*Stager, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultTextureCacheSize
	}
	c, err := lru.New[string, *image.NRGBA](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("font: create texture cache: %w", err)
	}
	return &Stager{textures: c}, nil
}

func (s *Stager) texture(path string) (*image.NRGBA, error) {
	if img, ok := s.textures.Get(path); ok {
		return img, nil
	}
	img, err := intImage.Load(path)
	if err != nil {
		return nil, err
	}
	nrgba := intImage.ToNRGBA(img)
	s.textures.Add(path, nrgba)
	return nrgba, nil
}

// cellRect returns the rectangle of e's cell inside a texture with bounds b.
func cellRect(b image.Rectangle, e Entry) image.Rectangle {
	cw := b.Dx() / max(e.Cols, 1)
	ch := b.Dy() / max(e.Rows, 1)
	x := b.Min.X + e.Col*cw
	y := b.Min.Y + e.Row*ch
	return image.Rect(x, y, x+cw, y+ch)
}

// Stage writes the frames of glyph id into dir and returns the number
// written. Characters whose texture cannot be loaded are logged and
// skipped; a failed write aborts the glyph.
func (s *Stager) Stage(dir, id string, entries []Entry) (int, error) {
	log := logging.Logger()
	n := 0
	for _, e := range entries {
		tex, err := s.texture(e.Texture)
		if err != nil {
			log.Warn("font: skipping character", "glyph", id, "char", fmt.Sprintf("U+%04X", e.Char), "error", err)
			continue
		}

		cell := cellRect(tex.Rect, e)
		if cell.Empty() {
			log.Warn("font: texture too small for its character grid",
				"glyph", id,
				"texture", e.Texture,
				"size", tex.Rect.Size().String(),
				"rows", e.Rows,
				"cols", e.Cols)
			continue
		}

		frame := image.NewNRGBA(image.Rectangle{Max: cell.Size()})
		intImage.Copy(frame, image.Point{}, tex, cell)

		path := filepath.Join(dir, FrameName(e.Char))
		if err := intImage.SavePNG(path, frame); err != nil {
			return n, fmt.Errorf("font: stage %s: %w", path, err)
		}
		n++
	}
	log.Debug("font: staged glyph", "glyph", id, "frames", n, "planned", len(entries))
	return n, nil
}
