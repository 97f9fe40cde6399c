// Package font translates the bitmap font providers of a Java-Edition pack
// into per-glyph frame directories ready for spritesheet composition.
//
// Bedrock addresses custom characters through glyph_<ID>.png sheets, where
// ID is the high byte of the code point and each sheet holds 16×16 cells
// indexed by the low byte. The package groups provider characters by that
// high byte, cuts each character out of its provider texture, and
// normalizes the result onto a fixed-size tile.
package font

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/geyserpack/internal/logging"
	"github.com/gogpu/geyserpack/pack"
)

// DefaultHeight is the provider height Minecraft assumes when none is given.
const DefaultHeight = 8

// ProviderBitmap is the only provider type converted to glyph sheets.
const ProviderBitmap = "bitmap"

// Sentinel errors for font package.
var (
	// ErrNoProviders is returned when a font definition lists no providers.
	ErrNoProviders = errors.New("font: no providers")
)

// Provider is one entry of a font definition's "providers" array.
type Provider struct {
	Type   string   `json:"type"`
	File   string   `json:"file"`
	Height int      `json:"height"`
	Ascent int      `json:"ascent"`
	Chars  []string `json:"chars"`
}

// TexturePath resolves the provider's texture inside the pack described by l.
// "ns:path" maps to assets/ns/textures/path; a bare path uses the minecraft
// namespace.
func (p *Provider) TexturePath(l pack.Layout) string {
	ns, path := pack.SplitLocation(p.File)
	return l.Asset(ns, "textures", path)
}

type fontFile struct {
	Providers []json.RawMessage `json:"providers"`
}

// ReadProviders parses the font definition at path and returns its bitmap
// providers in declaration order. Other provider types are skipped.
func ReadProviders(path string) ([]Provider, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("font: read %s: %w", path, err)
	}
	return ParseProviders(data)
}

// ParseProviders is ReadProviders for an in-memory font definition.
func ParseProviders(data []byte) ([]Provider, error) {
	var ff fontFile
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("font: parse definition: %w", err)
	}
	if len(ff.Providers) == 0 {
		return nil, ErrNoProviders
	}

	log := logging.Logger()
	out := make([]Provider, 0, len(ff.Providers))
	for i, raw := range ff.Providers {
		p := Provider{Height: DefaultHeight}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("font: parse provider %d: %w", i, err)
		}
		if p.Type != ProviderBitmap {
			log.Debug("font: skipping provider", "index", i, "type", p.Type)
			continue
		}
		if p.File == "" || len(p.Chars) == 0 {
			log.Warn("font: bitmap provider without file or chars", "index", i)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
