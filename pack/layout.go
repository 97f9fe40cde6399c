// Package pack fetches and unpacks Java-Edition resource packs and describes
// the working directory layout shared by the converters.
package pack

import (
	"path/filepath"
	"strings"
)

// DefaultNamespace is the namespace assumed for resource locations without one.
const DefaultNamespace = "minecraft"

// Layout resolves the directories used during a conversion, all relative to
// Root:
//
//	pack/                       extracted Java pack
//	images/<ID>/                staged glyph frames
//	export/<ID>/                normalized glyph frames
//	staging/target/rp/          Bedrock resource pack output
type Layout struct {
	Root string
}

// PackDir returns the directory the Java pack is extracted into.
func (l Layout) PackDir() string { return filepath.Join(l.Root, "pack") }

// AssetsDir returns the pack's assets directory.
func (l Layout) AssetsDir() string { return filepath.Join(l.PackDir(), "assets") }

// ImagesDir returns the staging directory for the frames of glyph id.
func (l Layout) ImagesDir(id string) string { return filepath.Join(l.Root, "images", id) }

// ExportDir returns the directory of normalized frames for glyph id.
func (l Layout) ExportDir(id string) string { return filepath.Join(l.Root, "export", id) }

// TargetDir returns the root of the Bedrock resource pack.
func (l Layout) TargetDir() string { return filepath.Join(l.Root, "staging", "target", "rp") }

// FontDir returns the Bedrock font directory holding glyph_<ID>.png sheets.
func (l Layout) FontDir() string { return filepath.Join(l.TargetDir(), "font") }

// TexturesDir returns the Bedrock textures directory.
func (l Layout) TexturesDir() string { return filepath.Join(l.TargetDir(), "textures") }

// AttachablesDir returns the Bedrock attachables directory.
func (l Layout) AttachablesDir() string { return filepath.Join(l.TargetDir(), "attachables") }

// Asset returns the path of assets/<namespace>/<kind>/<path> in the pack.
func (l Layout) Asset(namespace, kind, path string) string {
	return filepath.Join(l.AssetsDir(), namespace, kind, filepath.FromSlash(path))
}

// SplitLocation splits a resource location "namespace:path" into its parts.
// A location without a namespace belongs to DefaultNamespace.
func SplitLocation(loc string) (namespace, path string) {
	ns, p, ok := strings.Cut(loc, ":")
	if !ok {
		return DefaultNamespace, loc
	}
	if ns == "" {
		ns = DefaultNamespace
	}
	return ns, p
}
