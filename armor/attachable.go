package armor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// FormatVersion is the attachable format version written for armor pieces.
const FormatVersion = "1.10.0"

// PlayerSuffix is appended to the base attachable name for the armor variant.
const PlayerSuffix = ".player.json"

// Attachable returns the armor attachable definition for the item with the
// given geyser identifier (without namespace), worn in slot piece with the
// armor layer texture named layer. Keys keep their declaration order.
func Attachable(id string, piece Piece, layer string) *orderedmap.OrderedMap {
	item := orderedmap.New()
	item.Set("geyser_custom:"+id, "query.owner_identifier == 'minecraft:player'")

	materials := orderedmap.New()
	materials.Set("default", "armor_leather")
	materials.Set("enchanted", "armor_leather_enchanted")

	textures := orderedmap.New()
	textures.Set("default", "textures/armor_layer/"+layer)
	textures.Set("enchanted", "textures/misc/enchanted_item_glint")

	geometry := orderedmap.New()
	geometry.Set("default", "geometry.player.armor."+piece.String())

	scripts := orderedmap.New()
	scripts.Set("parent_setup", "variable.helmet_layer_visible = 0.0;")

	desc := orderedmap.New()
	desc.Set("identifier", "geyser_custom:"+id+".player")
	desc.Set("item", item)
	desc.Set("materials", materials)
	desc.Set("textures", textures)
	desc.Set("geometry", geometry)
	desc.Set("scripts", scripts)
	desc.Set("render_controllers", []string{"controller.render.armor"})

	body := orderedmap.New()
	body.Set("description", desc)

	root := orderedmap.New()
	root.Set("format_version", FormatVersion)
	root.Set("minecraft:attachable", body)
	return root
}

// WriteAttachable marshals def to path, replacing any existing file.
func WriteAttachable(path string, def *orderedmap.OrderedMap) error {
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("armor: encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("armor: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("armor: write %s: %w", path, err)
	}
	return nil
}

// FindAttachable returns the first attachable in dir whose name starts with
// base, ignoring previously written armor variants.
func FindAttachable(dir, base string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, globEscape(base)+"*.json"))
	if err != nil {
		return "", fmt.Errorf("armor: glob %s: %w", dir, err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		if !strings.HasSuffix(m, PlayerSuffix) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoAttachable, filepath.Join(dir, base))
}

// ReadIdentifier returns the identifier of the attachable at path with its
// namespace removed.
func ReadIdentifier(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("armor: read %s: %w", path, err)
	}
	var a struct {
		Attachable struct {
			Description struct {
				Identifier string `json:"identifier"`
			} `json:"description"`
		} `json:"minecraft:attachable"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return "", fmt.Errorf("armor: parse %s: %w", path, err)
	}
	_, id, ok := strings.Cut(a.Attachable.Description.Identifier, ":")
	if !ok || id == "" {
		return "", fmt.Errorf("%w: %s", ErrNoIdentifier, path)
	}
	return id, nil
}

// PlayerPath returns the armor variant path for the attachable at path.
func PlayerPath(path string) string {
	return strings.TrimSuffix(path, ".json") + PlayerSuffix
}

func globEscape(s string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`)
	return r.Replace(s)
}
