package sprite

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/geyserpack/internal/logging"
)

// Job names one glyph group to convert.
type Job struct {
	Glyph   string // glyph identifier, e.g. "E0"
	SrcDir  string // directory holding the group's frames
	DstPath string // spritesheet output path
}

// Result reports the outcome of one Job.
type Result struct {
	Glyph   string
	Path    string
	Frames  int
	Skipped int
	Size    image.Point
	Err     error
}

// ValidGlyph reports whether glyph is usable in a spritesheet file name:
// non-empty and made only of ASCII letters and digits.
func ValidGlyph(glyph string) bool {
	if glyph == "" {
		return false
	}
	for _, r := range glyph {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		default:
			return false
		}
	}
	return true
}

// Build collects, composes and saves the spritesheet for one glyph group.
// The returned Result carries the same error as the second return value.
func Build(ctx context.Context, job Job, opts Options) (Result, error) {
	res := Result{Glyph: job.Glyph, Path: job.DstPath}
	fail := func(err error) (Result, error) {
		res.Err = err
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if !ValidGlyph(job.Glyph) {
		return fail(fmt.Errorf("%w: %q", ErrInvalidGlyph, job.Glyph))
	}
	if err := opts.Validate(); err != nil {
		return fail(err)
	}

	c, err := Collect(job.Glyph, job.SrcDir)
	if err != nil {
		return fail(err)
	}
	res.Frames = len(c.Frames)
	res.Skipped = len(c.Skipped)

	canvas, err := Compose(c.Frames, opts)
	if err != nil {
		return fail(err)
	}
	res.Size = canvas.Rect.Size()

	if err := Save(job.DstPath, canvas); err != nil {
		return fail(err)
	}

	logging.Logger().Info("sprite: wrote glyph sheet",
		"glyph", job.Glyph,
		"path", job.DstPath,
		"frames", res.Frames,
		"skipped", res.Skipped,
		"size", res.Size.String())
	return res, nil
}

// BuildAll builds every job, running at most workers jobs at a time
// (unlimited when workers <= 0). A failing glyph does not stop the others.
// Results are returned in job order; jobs not started before ctx is
// cancelled report the context error.
func BuildAll(ctx context.Context, jobs []Job, opts Options, workers int) []Result {
	results := make([]Result, len(jobs))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, job := range jobs {
		g.Go(func() error {
			res, err := Build(ctx, job, opts)
			if err != nil {
				logging.Logger().Error("sprite: glyph failed", "glyph", job.Glyph, "error", err)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
