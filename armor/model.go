// Package armor converts leather-armor custom model data overrides, as
// generated for OptiFine CIT armor, into Bedrock attachable definitions.
package armor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/gogpu/geyserpack/pack"
)

// Sentinel errors for armor package.
var (
	// ErrNoLayer1 is returned when an item model has no "layer1" texture.
	ErrNoLayer1 = errors.New("armor: item model has no layer1 texture")

	// ErrNoAttachable is returned when no attachable matches an item model.
	ErrNoAttachable = errors.New("armor: no attachable for model")

	// ErrNoIdentifier is returned when an attachable lacks a namespaced identifier.
	ErrNoIdentifier = errors.New("armor: attachable has no identifier")
)

// Piece is one of the four armor slots.
type Piece int

const (
	Helmet Piece = iota
	Chestplate
	Leggings
	Boots
)

// Pieces lists the armor slots in conversion order.
var Pieces = []Piece{Helmet, Chestplate, Leggings, Boots}

// String returns the slot name used in Bedrock geometry identifiers.
func (p Piece) String() string {
	switch p {
	case Helmet:
		return "helmet"
	case Chestplate:
		return "chestplate"
	case Leggings:
		return "leggings"
	case Boots:
		return "boots"
	default:
		return "unknown"
	}
}

// Item returns the vanilla leather item whose model carries the overrides.
func (p Piece) Item() string {
	return "leather_" + p.String()
}

// LayerKey returns the CIT property naming the piece's armor layer texture.
// Leggings render from the second layer.
func (p Piece) LayerKey() string {
	if p == Leggings {
		return "texture.leather_layer_2"
	}
	return "texture.leather_layer_1"
}

// isVanillaItem reports whether item is one of the leather armor items.
func isVanillaItem(item string) bool {
	for _, p := range Pieces {
		if p.Item() == item {
			return true
		}
	}
	return false
}

// Override is one entry of an item model's "overrides" array.
type Override struct {
	Predicate struct {
		CustomModelData int `json:"custom_model_data"`
	} `json:"predicate"`
	Model string `json:"model"`
}

// Resource is a parsed model reference "namespace:path".
type Resource struct {
	Namespace string
	Path      string // e.g. "item/armor/ruby_helmet"
	Item      string // last path segment, e.g. "ruby_helmet"
}

// ParseResource parses a model resource location.
func ParseResource(loc string) Resource {
	ns, p := pack.SplitLocation(loc)
	return Resource{Namespace: ns, Path: p, Item: path.Base(p)}
}

// ReadOverrides returns the overrides of the item model at path.
func ReadOverrides(path string) ([]Override, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("armor: read %s: %w", path, err)
	}
	var m struct {
		Overrides []Override `json:"overrides"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("armor: parse %s: %w", path, err)
	}
	return m.Overrides, nil
}

// ReadLayer1 returns the "layer1" texture location of the item model at path.
func ReadLayer1(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("armor: read %s: %w", path, err)
	}
	var m struct {
		Textures map[string]string `json:"textures"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("armor: parse %s: %w", path, err)
	}
	tex, ok := m.Textures["layer1"]
	if !ok || tex == "" {
		return "", fmt.Errorf("%w: %s", ErrNoLayer1, path)
	}
	return tex, nil
}
