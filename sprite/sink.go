package sprite

import (
	"fmt"
	"image"
	"path/filepath"

	intImage "github.com/gogpu/geyserpack/internal/image"
)

// SheetPath returns the spritesheet path for glyph under dir.
func SheetPath(dir, glyph string) string {
	return filepath.Join(dir, "glyph_"+glyph+".png")
}

// Save writes img to path as PNG. Missing parent directories are created and
// an existing file is replaced. The file is renamed into place only after it
// has been fully written.
func Save(path string, img image.Image) error {
	if err := intImage.SavePNG(path, img); err != nil {
		return fmt.Errorf("sprite: save %s: %w", path, err)
	}
	return nil
}
