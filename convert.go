package geyserpack

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/geyserpack/armor"
	"github.com/gogpu/geyserpack/font"
	"github.com/gogpu/geyserpack/pack"
	"github.com/gogpu/geyserpack/sprite"
)

// Report summarizes a conversion run.
type Report struct {
	PackFiles int             // files extracted from the fetched pack
	Glyphs    []sprite.Result // one per glyph group, in discovery order
	Armor     armor.Report
	Elapsed   time.Duration
}

// Failed returns the glyph groups that did not produce a spritesheet.
func (r *Report) Failed() []sprite.Result {
	return sprite.Failed(r.Glyphs)
}

// OK reports whether every glyph group and armor override converted.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0 && r.Armor.Skipped == 0
}

// Converter runs conversions for one working directory.
type Converter struct {
	cfg     Config
	layout  pack.Layout
	fetcher *pack.Fetcher
	stager  *font.Stager
}

// NewConverter validates cfg and returns a Converter for it.
func NewConverter(cfg Config) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stager, err := font.NewStager(cfg.TextureCacheSize)
	if err != nil {
		return nil, err
	}
	return &Converter{
		cfg:     cfg,
		layout:  pack.Layout{Root: cfg.WorkDir},
		fetcher: &pack.Fetcher{},
		stager:  stager,
	}, nil
}

// Layout returns the working directory layout.
func (c *Converter) Layout() pack.Layout { return c.layout }

// Run fetches the pack when a URL is configured, then converts fonts and
// armor. A failing glyph group or armor override is recorded in the report
// and does not stop the run; the returned error is reserved for failures
// that prevent the run as a whole.
func (c *Converter) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	log := Logger()
	rep := &Report{}

	if c.cfg.PackURL != "" {
		n, err := pack.Download(ctx, c.fetcher, c.cfg.PackURL, c.layout.PackDir())
		if err != nil {
			return nil, err
		}
		rep.PackFiles = n
	}

	if c.cfg.Fonts {
		results, err := c.convertFonts(ctx)
		if err != nil {
			return nil, err
		}
		rep.Glyphs = results
	}

	if c.cfg.Armor {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ac := &armor.Converter{Layout: c.layout}
		rep.Armor = ac.Run()
	}

	rep.Elapsed = time.Since(start)
	log.Info("geyserpack: conversion finished",
		"glyphs", len(rep.Glyphs),
		"failed", len(rep.Failed()),
		"attachables", rep.Armor.Written,
		"armor_skipped", rep.Armor.Skipped,
		"elapsed", rep.Elapsed)
	return rep, nil
}

// Sprite composites the spritesheet of glyph id from its exported frames,
// without staging or normalizing them first. A zero tile takes the tile size
// from the first frame; otherwise tile overrides it.
func (c *Converter) Sprite(ctx context.Context, id string, tile image.Point) (sprite.Result, error) {
	job := sprite.Job{
		Glyph:   id,
		SrcDir:  c.layout.ExportDir(id),
		DstPath: sprite.SheetPath(c.layout.FontDir(), id),
	}
	return sprite.Build(ctx, job, c.spriteOptions(tile))
}

func (c *Converter) spriteOptions(tile image.Point) sprite.Options {
	return sprite.Options{TileWidth: tile.X, TileHeight: tile.Y, Strict: c.cfg.Strict}
}

// blank returns the tile frames are placed on.
func (c *Converter) blank() (*image.NRGBA, error) {
	if c.cfg.BlankPath != "" {
		return font.LoadBlank(c.cfg.BlankPath)
	}
	return font.NewBlank(c.cfg.TileWidth, c.cfg.TileHeight)
}

// convertFonts turns the default font's bitmap providers into one sheet per
// glyph group. A pack without a default font converts nothing.
func (c *Converter) convertFonts(ctx context.Context) ([]sprite.Result, error) {
	log := Logger()

	defPath := c.layout.Asset(pack.DefaultNamespace, "font", "default.json")
	providers, err := font.ReadProviders(defPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("geyserpack: no default font, skipping glyphs", "path", defPath)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	blank, err := c.blank()
	if err != nil {
		return nil, err
	}

	plan := font.NewPlan(c.layout, providers)
	ids := plan.Glyphs()
	results := make([]sprite.Result, len(ids))
	log.Info("geyserpack: converting glyphs", "groups", len(ids), "characters", plan.Len())

	var g errgroup.Group
	if c.cfg.Jobs > 0 {
		g.SetLimit(c.cfg.Jobs)
	}
	for i, id := range ids {
		g.Go(func() error {
			res, err := c.convertGlyph(ctx, plan, id, blank)
			if err != nil {
				log.Error("geyserpack: glyph failed", "glyph", id, "error", err)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// convertGlyph stages, normalizes and composites one glyph group.
func (c *Converter) convertGlyph(ctx context.Context, plan *font.Plan, id string, blank *image.NRGBA) (sprite.Result, error) {
	l := c.layout
	fail := func(err error) (sprite.Result, error) {
		err = fmt.Errorf("glyph %s: %w", id, err)
		return sprite.Result{Glyph: id, Err: err}, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if _, err := c.stager.Stage(l.ImagesDir(id), id, plan.Entries(id)); err != nil {
		return fail(err)
	}
	if c.cfg.FillBlank {
		if _, err := font.FillBlank(l.ImagesDir(id), id, blank); err != nil {
			return fail(err)
		}
	}
	if _, err := font.Export(l.ImagesDir(id), l.ExportDir(id), blank, plan.Heights(id)); err != nil {
		return fail(err)
	}

	job := sprite.Job{
		Glyph:   id,
		SrcDir:  l.ExportDir(id),
		DstPath: sprite.SheetPath(l.FontDir(), id),
	}
	return sprite.Build(ctx, job, c.spriteOptions(blank.Rect.Size()))
}
