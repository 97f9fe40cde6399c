package geyserpack

import (
	"runtime"

	"github.com/gogpu/geyserpack/font"
)

// Default tile size of a normalized glyph frame.
const (
	DefaultTileWidth  = 256
	DefaultTileHeight = 256
)

// maxTileSize bounds a tile edge; a full sheet is 16 tiles wide.
const maxTileSize = 4096

// Config configures a Converter.
type Config struct {
	// WorkDir holds the extracted pack, intermediate frames and the Bedrock
	// output. Required.
	WorkDir string

	// PackURL is the Java pack to fetch before converting. When empty the
	// pack is expected to be extracted under WorkDir already.
	PackURL string

	// TileWidth and TileHeight size the blank tile frames are placed on,
	// and therefore every spritesheet cell.
	TileWidth  int
	TileHeight int

	// BlankPath optionally names an image used as the blank tile instead of
	// a transparent TileWidth×TileHeight one. Its size becomes the tile size.
	BlankPath string

	// FillBlank writes the blank tile for every character missing from a
	// glyph group, so each sheet holds all 256 cells.
	FillBlank bool

	// Strict makes a frame size that disagrees with the tile size an error
	// instead of a warning.
	Strict bool

	// Jobs is the number of glyph groups processed concurrently.
	// Zero means unlimited.
	Jobs int

	// TextureCacheSize is the number of decoded font textures kept in memory.
	TextureCacheSize int

	// Fonts and Armor enable the two conversion stages.
	Fonts bool
	Armor bool
}

// DefaultConfig returns the default configuration. WorkDir must still be set.
func DefaultConfig() Config {
	return Config{
		TileWidth:        DefaultTileWidth,
		TileHeight:       DefaultTileHeight,
		FillBlank:        true,
		Jobs:             runtime.GOMAXPROCS(0),
		TextureCacheSize: font.DefaultTextureCacheSize,
		Fonts:            true,
		Armor:            true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.WorkDir == "" {
		return &ConfigError{Field: "WorkDir", Reason: "must be set"}
	}
	if c.TileWidth < 1 || c.TileWidth > maxTileSize {
		return &ConfigError{Field: "TileWidth", Reason: "must be between 1 and 4096"}
	}
	if c.TileHeight < 1 || c.TileHeight > maxTileSize {
		return &ConfigError{Field: "TileHeight", Reason: "must be between 1 and 4096"}
	}
	if c.Jobs < 0 {
		return &ConfigError{Field: "Jobs", Reason: "must be non-negative"}
	}
	if c.TextureCacheSize < 0 {
		return &ConfigError{Field: "TextureCacheSize", Reason: "must be non-negative"}
	}
	return nil
}

// ConfigError represents an invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "geyserpack: invalid config " + e.Field + ": " + e.Reason
}
