package armor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gogpu/geyserpack/internal/logging"
	"github.com/gogpu/geyserpack/pack"
)

// citDir is the pack-relative directory holding generated armor CIT files.
const citDir = "optifine/cit/ia_generated_armors"

// MissingPropertyError is returned when a CIT file lacks the layer key.
type MissingPropertyError struct {
	File string
	Key  string
}

func (e *MissingPropertyError) Error() string {
	return "armor: " + e.File + ": missing property " + e.Key
}

// Report summarizes an armor conversion.
type Report struct {
	Written int // attachables written
	Skipped int // overrides that failed
}

// Converter turns the leather armor overrides of an extracted pack into
// attachables. It holds no state between runs.
type Converter struct {
	Layout pack.Layout
}

// Run converts every override of the four leather armor models. A missing
// model is skipped; a failing override is logged and counted, and never
// stops the others.
func (c *Converter) Run() Report {
	log := logging.Logger()
	var rep Report

	for _, piece := range Pieces {
		model := c.Layout.Asset(pack.DefaultNamespace, "models", "item/"+piece.Item()+".json")
		overrides, err := ReadOverrides(model)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug("armor: no model", "piece", piece.String())
			} else {
				log.Warn("armor: unreadable model", "piece", piece.String(), "error", err)
			}
			continue
		}

		for _, ov := range overrides {
			res := ParseResource(ov.Model)
			if isVanillaItem(res.Item) {
				continue
			}
			out, err := c.convert(piece, res)
			if err != nil {
				log.Warn("armor: skipping override",
					"piece", piece.String(),
					"model", ov.Model,
					"custom_model_data", ov.Predicate.CustomModelData,
					"error", err)
				rep.Skipped++
				continue
			}
			log.Info("armor: wrote attachable", "piece", piece.String(), "path", out)
			rep.Written++
		}
	}
	return rep
}

// convert handles one override and returns the attachable path written.
func (c *Converter) convert(piece Piece, res Resource) (string, error) {
	l := c.Layout

	// Armor layer texture named by the CIT properties.
	citFile := l.Asset(pack.DefaultNamespace, citDir, res.Namespace+"_"+res.Item+".properties")
	props, err := ReadProperties(citFile)
	if err != nil {
		return "", err
	}
	layerFile, ok := props[piece.LayerKey()]
	if !ok || layerFile == "" {
		return "", &MissingPropertyError{File: citFile, Key: piece.LayerKey()}
	}
	layer, _, _ := strings.Cut(layerFile, ".")

	layerDst := filepath.Join(l.TexturesDir(), "armor_layer", layer+".png")
	if _, err := os.Stat(layerDst); errors.Is(err, fs.ErrNotExist) {
		layerSrc := filepath.Join(filepath.Dir(citFile), layer+".png")
		if err := copyFile(layerSrc, layerDst); err != nil {
			return "", err
		}
	}

	// Item icon texture referenced by the custom model.
	tex, err := ReadLayer1(l.Asset(res.Namespace, "models", res.Path+".json"))
	if err != nil {
		return "", err
	}
	texNS, texPath := pack.SplitLocation(tex)
	iconDst := filepath.Join(l.TexturesDir(), res.Namespace, filepath.FromSlash(res.Path)+".png")
	if err := copyFile(l.Asset(texNS, "textures", texPath+".png"), iconDst); err != nil {
		return "", err
	}

	// Attachable generated for the item by the base converter.
	dir := filepath.Join(l.AttachablesDir(), res.Namespace, filepath.FromSlash(path.Dir(res.Path)))
	base, err := FindAttachable(dir, path.Base(res.Path))
	if err != nil {
		return "", err
	}
	id, err := ReadIdentifier(base)
	if err != nil {
		return "", err
	}

	out := PlayerPath(base)
	if err := WriteAttachable(out, Attachable(id, piece, layer)); err != nil {
		return "", err
	}
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return fmt.Errorf("armor: open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("armor: create %s: %w", filepath.Dir(dst), err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("armor: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("armor: copy %s: %w", src, err)
	}
	return out.Close()
}
