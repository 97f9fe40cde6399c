package sprite

import (
	"image"

	intImage "github.com/gogpu/geyserpack/internal/image"
	"github.com/gogpu/geyserpack/internal/logging"
)

// Options configures spritesheet composition.
type Options struct {
	// TileWidth and TileHeight override the tile size otherwise taken from
	// the first frame. Both must be set, or both left zero.
	TileWidth  int
	TileHeight int

	// Strict makes Compose fail with a *SizeMismatchError when the override
	// does not match the first frame, instead of logging a warning.
	Strict bool
}

// Validate checks if the options are valid.
func (o *Options) Validate() error {
	if o.TileWidth < 0 {
		return &OptionsError{Field: "TileWidth", Reason: "must be non-negative"}
	}
	if o.TileHeight < 0 {
		return &OptionsError{Field: "TileHeight", Reason: "must be non-negative"}
	}
	if (o.TileWidth == 0) != (o.TileHeight == 0) {
		return &OptionsError{Field: "TileWidth", Reason: "must be set together with TileHeight"}
	}
	return nil
}

// hasOverride reports whether a caller-supplied tile size is set.
func (o *Options) hasOverride() bool {
	return o.TileWidth > 0 && o.TileHeight > 0
}

// Compose places frames on a transparent canvas in row-major order,
// Columns tiles per row.
//
// Frame i is copied to the cell returned by Grid.Cell(i), cropped to the
// tile size. A frame smaller than the tile leaves the rest of its cell
// transparent; differing frame sizes never fail.
func Compose(frames []Frame, opts Options) (*image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, &EmptyInputError{}
	}

	log := logging.Logger()

	tile := frames[0].Size()
	if opts.hasOverride() {
		want := image.Pt(opts.TileWidth, opts.TileHeight)
		if want != tile {
			if opts.Strict {
				return nil, &SizeMismatchError{Frame: frames[0].Name, Want: want, Got: tile}
			}
			log.Warn("sprite: tile size override differs from first frame",
				"frame", frames[0].Name,
				"override", want.String(),
				"frame_size", tile.String())
		}
		tile = want
	}

	grid, err := NewGrid(len(frames), tile.X, tile.Y)
	if err != nil {
		return nil, err
	}

	canvas, err := intImage.NewTransparent(grid.Size().X, grid.Size().Y)
	if err != nil {
		return nil, err
	}

	for i, f := range frames {
		cell, _ := grid.Cell(i)
		if f.Size() != tile {
			log.Debug("sprite: frame size differs from tile",
				"frame", f.Name,
				"frame_size", f.Size().String(),
				"tile", tile.String())
		}
		src := f.Image.Rect.Min
		intImage.Copy(canvas, cell.Min, f.Image, image.Rectangle{Min: src, Max: src.Add(tile)})
	}

	cols, rows := grid.Dimensions()
	log.Debug("sprite: composed sheet",
		"frames", len(frames),
		"cols", cols,
		"rows", rows,
		"size", grid.Size().String())
	return canvas, nil
}
