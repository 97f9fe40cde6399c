// Package geyserpack converts Java Edition resource packs into the assets a
// Bedrock client needs through Geyser.
//
// # Overview
//
// A conversion runs in three stages over a working directory:
//
//  1. The Java pack is fetched (HTTP, S3, GCS or a local file) and extracted.
//  2. Bitmap font providers are cut into per-character frames, normalized
//     onto a blank tile and composited into one glyph_<ID>.png spritesheet
//     per glyph group. Sheets are 16 columns wide, filled row-major.
//  3. Leather armor overrides become Bedrock armor attachables.
//
// # Quick Start
//
//	cfg := geyserpack.DefaultConfig()
//	cfg.WorkDir = "work"
//	cfg.PackURL = "https://example.com/pack.zip"
//
//	c, err := geyserpack.NewConverter(cfg)
//	if err != nil {
//	    return err
//	}
//	report, err := c.Run(ctx)
//
// # Packages
//
//   - sprite: glyph spritesheet compositor
//   - font: font provider staging and frame normalization
//   - armor: leather armor attachables
//   - pack: pack acquisition and working directory layout
//
// # Logging
//
// geyserpack produces no log output by default. Call [SetLogger] to enable
// it; all sub-packages share the same logger.
package geyserpack
