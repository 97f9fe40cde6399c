// Package sprite composites the per-character frames of one glyph group into
// a single Bedrock glyph spritesheet.
//
// # Pipeline
//
// A glyph group is converted in three stages:
//
//  1. [Collect] reads every image in the group's source directory in
//     filename order. Files that fail to decode are logged and skipped.
//  2. [Compose] lays the frames out on a fixed 16-column grid. The tile size
//     is taken from the first frame unless overridden through [Options].
//  3. [Save] writes the canvas as PNG to glyph_<ID>.png.
//
// [Build] runs the three stages for one [Job]; [BuildAll] runs many jobs
// concurrently and reports each glyph's outcome separately.
//
// # Layout
//
// For N frames of size tw×th the sheet is tw×min(N,16) wide and
// th×ceil(N/16) tall. Frame i is placed at ((i%16)×tw, (i/16)×th).
// Frames larger than the tile are cropped to their top-left tw×th region;
// smaller frames leave the remainder of their cell transparent.
//
// # Usage
//
//	res, err := sprite.Build(ctx, sprite.Job{
//	    Glyph:   "E0",
//	    SrcDir:  "export/E0",
//	    DstPath: sprite.SheetPath("staging/target/rp/font", "E0"),
//	}, sprite.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
package sprite
