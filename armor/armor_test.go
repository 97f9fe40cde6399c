package armor

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/geyserpack/pack"
)

func TestParseProperties(t *testing.T) {
	input := "# generated\n" +
		"! also a comment\n" +
		"type=armor\n" +
		"items : leather_helmet leather_chestplate\n" +
		"texture.leather_layer_1=ruby_armor_layer_1.png\n" +
		"texture.leather_layer_2   ruby_armor_layer_2.png\n" +
		"long = first \\\n    second\n" +
		"escaped\\=key=\\u0041b\\tc\n" +
		"latin=caf\xe9\n" +
		"empty=\n" +
		"type=override\r\n"

	got, err := ParseProperties(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseProperties: %v", err)
	}

	want := map[string]string{
		"type":                    "override",
		"items":                   "leather_helmet leather_chestplate",
		"texture.leather_layer_1": "ruby_armor_layer_1.png",
		"texture.leather_layer_2": "ruby_armor_layer_2.png",
		"long":                    "first second",
		"escaped=key":             "Ab\tc",
		"latin":                   "café",
		"empty":                   "",
	}
	if len(got) != len(want) {
		t.Errorf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%q = %q, want %q", k, got[k], v)
		}
	}
}

func TestParsePropertiesBadEscape(t *testing.T) {
	if _, err := ParseProperties(strings.NewReader("k=\\u00zz\n")); err == nil {
		t.Fatal("expected error for malformed escape")
	}
}

func TestPiece(t *testing.T) {
	tests := []struct {
		piece Piece
		name  string
		item  string
		layer string
	}{
		{Helmet, "helmet", "leather_helmet", "texture.leather_layer_1"},
		{Chestplate, "chestplate", "leather_chestplate", "texture.leather_layer_1"},
		{Leggings, "leggings", "leather_leggings", "texture.leather_layer_2"},
		{Boots, "boots", "leather_boots", "texture.leather_layer_1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.piece.String(); got != tt.name {
				t.Errorf("String() = %q", got)
			}
			if got := tt.piece.Item(); got != tt.item {
				t.Errorf("Item() = %q", got)
			}
			if got := tt.piece.LayerKey(); got != tt.layer {
				t.Errorf("LayerKey() = %q", got)
			}
		})
	}
}

func TestParseResource(t *testing.T) {
	r := ParseResource("ruby:item/armor/ruby_helmet")
	if r.Namespace != "ruby" || r.Path != "item/armor/ruby_helmet" || r.Item != "ruby_helmet" {
		t.Errorf("ParseResource = %+v", r)
	}
	r = ParseResource("item/leather_helmet")
	if r.Namespace != pack.DefaultNamespace || r.Item != "leather_helmet" {
		t.Errorf("ParseResource without namespace = %+v", r)
	}
}

func TestAttachableKeyOrder(t *testing.T) {
	data, err := json.Marshal(Attachable("ruby_helmet", Helmet, "ruby_armor_layer_1"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	order := []string{
		`"format_version":"1.10.0"`,
		`"minecraft:attachable"`,
		`"identifier":"geyser_custom:ruby_helmet.player"`,
		`"item"`,
		`"materials"`,
		`"textures"`,
		`"geometry":{"default":"geometry.player.armor.helmet"}`,
		`"scripts"`,
		`"render_controllers":["controller.render.armor"]`,
	}
	last := -1
	for _, key := range order {
		i := strings.Index(s, key)
		if i < 0 {
			t.Fatalf("missing %s in %s", key, s)
		}
		if i < last {
			t.Errorf("%s out of order in %s", key, s)
		}
		last = i
	}
	if !strings.Contains(s, `"default":"textures/armor_layer/ruby_armor_layer_1"`) {
		t.Errorf("layer texture missing: %s", s)
	}
}

func TestFindAttachable(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ruby_helmet.player.json", "ruby_helmet.json", "other.json"} {
		writeFile(t, filepath.Join(dir, name), "{}")
	}
	got, err := FindAttachable(dir, "ruby_helmet")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "ruby_helmet.json" {
		t.Errorf("FindAttachable = %s", got)
	}

	_, err = FindAttachable(dir, "missing")
	if !errors.Is(err, ErrNoAttachable) {
		t.Errorf("err = %v, want ErrNoAttachable", err)
	}
}

// testPack writes a pack with one custom helmet and one custom leggings
// override, plus the attachables the base converter would have produced.
func testPack(t *testing.T) pack.Layout {
	t.Helper()
	l := pack.Layout{Root: t.TempDir()}

	writeFile(t, l.Asset("minecraft", "models", "item/leather_helmet.json"), `{
		"parent": "item/generated",
		"overrides": [
			{"predicate": {"custom_model_data": 1}, "model": "item/leather_helmet"},
			{"predicate": {"custom_model_data": 10001}, "model": "ruby:item/armor/ruby_helmet"}
		]
	}`)
	writeFile(t, l.Asset("minecraft", "models", "item/leather_leggings.json"), `{
		"overrides": [
			{"predicate": {"custom_model_data": 10002}, "model": "ruby:item/armor/ruby_leggings"},
			{"predicate": {"custom_model_data": 10003}, "model": "ruby:item/armor/broken_leggings"}
		]
	}`)

	cit := filepath.Join(l.AssetsDir(), "minecraft", citDir)
	writeFile(t, filepath.Join(cit, "ruby_ruby_helmet.properties"),
		"type=armor\ntexture.leather_layer_1=ruby_layer_1.png\n")
	writeFile(t, filepath.Join(cit, "ruby_ruby_leggings.properties"),
		"type=armor\ntexture.leather_layer_2=ruby_layer_2.png\n")
	writeFile(t, filepath.Join(cit, "ruby_layer_1.png"), "layer1")
	writeFile(t, filepath.Join(cit, "ruby_layer_2.png"), "layer2")

	writeFile(t, l.Asset("ruby", "models", "item/armor/ruby_helmet.json"),
		`{"textures": {"layer0": "x", "layer1": "gems:item/ruby_helmet_icon"}}`)
	writeFile(t, l.Asset("ruby", "models", "item/armor/ruby_leggings.json"),
		`{"textures": {"layer1": "gems:item/ruby_leggings_icon"}}`)
	writeFile(t, l.Asset("gems", "textures", "item/ruby_helmet_icon.png"), "helmet icon")
	writeFile(t, l.Asset("gems", "textures", "item/ruby_leggings_icon.png"), "leggings icon")

	att := filepath.Join(l.AttachablesDir(), "ruby", "item", "armor")
	writeFile(t, filepath.Join(att, "ruby_helmet.json"),
		`{"minecraft:attachable": {"description": {"identifier": "geyser_custom:gmdl_abc"}}}`)
	writeFile(t, filepath.Join(att, "ruby_leggings.json"),
		`{"minecraft:attachable": {"description": {"identifier": "geyser_custom:gmdl_def"}}}`)
	return l
}

func TestConverterRun(t *testing.T) {
	l := testPack(t)
	c := &Converter{Layout: l}

	rep := c.Run()
	if rep.Written != 2 || rep.Skipped != 1 {
		t.Fatalf("Run = %+v, want 2 written, 1 skipped", rep)
	}

	att := filepath.Join(l.AttachablesDir(), "ruby", "item", "armor")
	var def struct {
		Format     string `json:"format_version"`
		Attachable struct {
			Description struct {
				Identifier string            `json:"identifier"`
				Item       map[string]string `json:"item"`
				Textures   map[string]string `json:"textures"`
				Geometry   map[string]string `json:"geometry"`
			} `json:"description"`
		} `json:"minecraft:attachable"`
	}
	readJSON(t, filepath.Join(att, "ruby_leggings.player.json"), &def)
	d := def.Attachable.Description
	if def.Format != FormatVersion {
		t.Errorf("format_version = %q", def.Format)
	}
	if d.Identifier != "geyser_custom:gmdl_def.player" {
		t.Errorf("identifier = %q", d.Identifier)
	}
	if _, ok := d.Item["geyser_custom:gmdl_def"]; !ok {
		t.Errorf("item = %v", d.Item)
	}
	if d.Textures["default"] != "textures/armor_layer/ruby_layer_2" {
		t.Errorf("textures = %v", d.Textures)
	}
	if d.Geometry["default"] != "geometry.player.armor.leggings" {
		t.Errorf("geometry = %v", d.Geometry)
	}

	for path, want := range map[string]string{
		filepath.Join(l.TexturesDir(), "armor_layer", "ruby_layer_1.png"):            "layer1",
		filepath.Join(l.TexturesDir(), "armor_layer", "ruby_layer_2.png"):            "layer2",
		filepath.Join(l.TexturesDir(), "ruby", "item", "armor", "ruby_helmet.png"):   "helmet icon",
		filepath.Join(l.TexturesDir(), "ruby", "item", "armor", "ruby_leggings.png"): "leggings icon",
	} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("read %s: %v", path, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", path, data, want)
		}
	}

	// A second run rewrites the same files and does not pick up its own output.
	rep = c.Run()
	if rep.Written != 2 {
		t.Errorf("second Run = %+v", rep)
	}
}

func TestConverterLayerCopiedOnce(t *testing.T) {
	l := testPack(t)
	dst := filepath.Join(l.TexturesDir(), "armor_layer", "ruby_layer_1.png")
	writeFile(t, dst, "existing")

	(&Converter{Layout: l}).Run()

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "existing" {
		t.Errorf("layer overwritten: %q", data)
	}
}

func TestConverterMissingProperty(t *testing.T) {
	l := testPack(t)
	c := &Converter{Layout: l}
	cit := filepath.Join(l.AssetsDir(), "minecraft", citDir, "ruby_ruby_helmet.properties")
	writeFile(t, cit, "type=armor\n")

	_, err := c.convert(Helmet, ParseResource("ruby:item/armor/ruby_helmet"))
	var mp *MissingPropertyError
	if !errors.As(err, &mp) {
		t.Fatalf("err = %v, want MissingPropertyError", err)
	}
	if mp.Key != "texture.leather_layer_1" {
		t.Errorf("Key = %q", mp.Key)
	}
}

func TestConverterEmptyPack(t *testing.T) {
	rep := (&Converter{Layout: pack.Layout{Root: t.TempDir()}}).Run()
	if rep != (Report{}) {
		t.Errorf("Run on empty pack = %+v", rep)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("%s: %v", path, err)
	}
}
