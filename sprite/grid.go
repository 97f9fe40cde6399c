package sprite

import "image"

// Columns is the fixed number of tiles per spritesheet row.
const Columns = 16

// Grid is the row-major cell layout of a spritesheet. Unlike an atlas
// allocator its size is derived from the number of tiles, so every tile
// always fits.
type Grid struct {
	count int // Number of tiles
	tileW int // Width of each cell
	tileH int // Height of each cell
	cols  int // Columns actually used: min(count, Columns)
	rows  int // ceil(count / Columns)
}

// NewGrid returns the layout for count tiles of tileW×tileH pixels.
func NewGrid(count, tileW, tileH int) (*Grid, error) {
	if count <= 0 {
		return nil, ErrEmptyInput
	}
	if tileW <= 0 {
		return nil, &OptionsError{Field: "TileWidth", Reason: "must be positive"}
	}
	if tileH <= 0 {
		return nil, &OptionsError{Field: "TileHeight", Reason: "must be positive"}
	}

	return &Grid{
		count: count,
		tileW: tileW,
		tileH: tileH,
		cols:  min(count, Columns),
		rows:  (count + Columns - 1) / Columns,
	}, nil
}

// Cell returns the pixel rectangle of tile i.
// Returns an empty rectangle and false if i is out of range.
func (g *Grid) Cell(i int) (image.Rectangle, bool) {
	if i < 0 || i >= g.count {
		return image.Rectangle{}, false
	}

	col := i % Columns
	row := i / Columns

	x := col * g.tileW
	y := row * g.tileH
	return image.Rect(x, y, x+g.tileW, y+g.tileH), true
}

// Size returns the canvas width and height in pixels.
func (g *Grid) Size() image.Point {
	return image.Pt(g.cols*g.tileW, g.rows*g.tileH)
}

// Bounds returns the canvas rectangle anchored at the origin.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rectangle{Max: g.Size()}
}

// Dimensions returns the number of columns and rows in use.
func (g *Grid) Dimensions() (cols, rows int) {
	return g.cols, g.rows
}

// Count returns the number of tiles.
func (g *Grid) Count() int {
	return g.count
}

// TileSize returns the size of each cell.
func (g *Grid) TileSize() image.Point {
	return image.Pt(g.tileW, g.tileH)
}
