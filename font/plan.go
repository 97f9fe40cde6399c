package font

import (
	"fmt"
	"unicode/utf8"

	"github.com/gogpu/geyserpack/internal/logging"
	"github.com/gogpu/geyserpack/pack"
)

// GlyphOf returns the glyph identifier of r: the upper-case high byte of its
// code point. ok is false for runes outside the Basic Multilingual Plane,
// which Bedrock glyph sheets cannot address.
func GlyphOf(r rune) (id string, ok bool) {
	if r < 0 || r > 0xFFFF {
		return "", false
	}
	return fmt.Sprintf("%02X", r>>8), true
}

// FrameName returns the frame file name of r within its glyph group,
// "0x<ID><lo>.png" with the low byte in lower-case hex. Names sort in
// low-byte order.
func FrameName(r rune) string {
	id, _ := GlyphOf(r)
	return frameName(id, int(r&0xFF))
}

func frameName(id string, low int) string {
	return fmt.Sprintf("0x%s%02x.png", id, low)
}

// Entry locates one character inside a provider texture. The texture is
// split into Rows×Cols equal cells.
type Entry struct {
	Char    rune
	Texture string // resolved texture path
	Row     int
	Col     int
	Rows    int
	Cols    int
	Height  int // provider height
}

// Plan groups provider characters by glyph identifier.
type Plan struct {
	order   []string
	entries map[string][]Entry
	seen    map[rune]bool
}

// NewPlan builds the plan for providers resolved against l. When the same
// character appears in several providers the first one wins, matching the
// order Minecraft consults providers in. U+0000 marks an empty cell.
func NewPlan(l pack.Layout, providers []Provider) *Plan {
	p := &Plan{
		entries: make(map[string][]Entry),
		seen:    make(map[rune]bool),
	}
	log := logging.Logger()

	for pi := range providers {
		prov := &providers[pi]
		texture := prov.TexturePath(l)

		cols := 0
		for _, row := range prov.Chars {
			cols = max(cols, utf8.RuneCountInString(row))
		}

		for ri, row := range prov.Chars {
			ci := 0
			for _, r := range row {
				col := ci
				ci++
				if r == 0 {
					continue
				}
				id, ok := GlyphOf(r)
				if !ok {
					log.Warn("font: character outside the BMP", "char", fmt.Sprintf("U+%X", r), "file", prov.File)
					continue
				}
				if p.seen[r] {
					log.Debug("font: duplicate character", "char", fmt.Sprintf("U+%04X", r), "file", prov.File)
					continue
				}
				p.seen[r] = true

				if _, exists := p.entries[id]; !exists {
					p.order = append(p.order, id)
				}
				p.entries[id] = append(p.entries[id], Entry{
					Char:    r,
					Texture: texture,
					Row:     ri,
					Col:     col,
					Rows:    len(prov.Chars),
					Cols:    cols,
					Height:  prov.Height,
				})
			}
		}
	}
	return p
}

// Glyphs returns the glyph identifiers in the order they were first seen.
func (p *Plan) Glyphs() []string {
	return append([]string(nil), p.order...)
}

// Entries returns the characters of glyph id.
func (p *Plan) Entries(id string) []Entry {
	return p.entries[id]
}

// Heights maps the frame names of glyph id to their provider heights.
func (p *Plan) Heights(id string) map[string]int {
	out := make(map[string]int, len(p.entries[id]))
	for _, e := range p.entries[id] {
		out[FrameName(e.Char)] = e.Height
	}
	return out
}

// Len returns the number of planned characters.
func (p *Plan) Len() int {
	return len(p.seen)
}
