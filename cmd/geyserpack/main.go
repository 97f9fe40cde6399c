// Command geyserpack converts a Java Edition resource pack into Bedrock
// glyph spritesheets and armor attachables.
//
// Usage:
//
//	geyserpack convert [-work DIR] [-pack-url URL] [-tile WxH] [-blank PNG] [-jobs N]
//	                   [-no-fill] [-strict] [-no-fonts] [-no-armor]
//	                   [-log-level LEVEL] [-log-file FILE]
//	geyserpack sprite -glyph ID [-work DIR] [-tile WxH] [-strict]
//
// The pack URL defaults to $PACK_URL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gogpu/geyserpack"
	"github.com/gogpu/geyserpack/internal/logging"
)

const usage = `usage: geyserpack <command> [flags]

commands:
  convert   fetch a pack and convert fonts and armor
  sprite    composite one glyph sheet from its exported frames

run "geyserpack <command> -h" for command flags
`

// errFailed marks a run that completed but left glyphs or armor unconverted.
var errFailed = errors.New("conversion incomplete")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "geyserpack:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return flag.ErrHelp
	}
	switch args[0] {
	case "convert":
		return runConvert(ctx, args[1:], stderr)
	case "sprite":
		return runSprite(ctx, args[1:], stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stderr, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// tileFlag parses a tile size given as "WxH" or "N".
type tileFlag struct {
	w, h *int
}

func (f tileFlag) String() string {
	if f.w == nil || f.h == nil || *f.w == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", *f.w, *f.h)
}

func (f tileFlag) Set(s string) error {
	w, h, err := parseTile(s)
	if err != nil {
		return err
	}
	*f.w, *f.h = w, h
	return nil
}

func parseTile(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		hs = ws
	}
	w, err = strconv.Atoi(ws)
	if err == nil {
		h, err = strconv.Atoi(hs)
	}
	if err != nil || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("invalid tile size %q, want WxH or N", s)
	}
	return w, h, nil
}

func runConvert(ctx context.Context, args []string, stderr io.Writer) error {
	cfg := geyserpack.DefaultConfig()
	var (
		noFill, noFonts, noArmor bool
		logLevel, logFile        string
	)

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.WorkDir, "work", ".", "working directory")
	fs.StringVar(&cfg.PackURL, "pack-url", os.Getenv("PACK_URL"), "Java pack to fetch (http(s), s3, gs, file or path)")
	fs.Var(tileFlag{&cfg.TileWidth, &cfg.TileHeight}, "tile", "tile size `WxH`")
	fs.StringVar(&cfg.BlankPath, "blank", "", "blank tile image")
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "glyph groups converted concurrently (0 = unlimited)")
	fs.BoolVar(&noFill, "no-fill", false, "do not fill missing characters with the blank tile")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail glyphs whose frame size differs from the tile size")
	fs.BoolVar(&noFonts, "no-fonts", false, "skip glyph conversion")
	fs.BoolVar(&noArmor, "no-armor", false, "skip armor conversion")
	fs.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&logFile, "log-file", "", "write JSON logs to a rotated file instead of stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.FillBlank = !noFill
	cfg.Fonts = !noFonts
	cfg.Armor = !noArmor

	logger, closer, err := logging.New(logLevel, logFile)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	geyserpack.SetLogger(logger)

	c, err := geyserpack.NewConverter(cfg)
	if err != nil {
		return err
	}
	rep, err := c.Run(ctx)
	if err != nil {
		return err
	}

	for _, r := range rep.Failed() {
		fmt.Fprintf(stderr, "glyph %s: %v\n", r.Glyph, r.Err)
	}
	fmt.Fprintf(stderr, "%d glyph sheets, %d failed; %d attachables, %d skipped (%s)\n",
		len(rep.Glyphs)-len(rep.Failed()), len(rep.Failed()),
		rep.Armor.Written, rep.Armor.Skipped, rep.Elapsed.Round(time.Millisecond))
	if !rep.OK() {
		return errFailed
	}
	return nil
}

func runSprite(ctx context.Context, args []string, stderr io.Writer) error {
	cfg := geyserpack.DefaultConfig()
	var (
		glyph, logLevel string
		tile            image.Point
	)

	fs := flag.NewFlagSet("sprite", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&glyph, "glyph", "", "glyph identifier, e.g. E0 (required)")
	fs.StringVar(&cfg.WorkDir, "work", ".", "working directory")
	fs.Var(tileFlag{&tile.X, &tile.Y}, "tile", "tile size `WxH` (default: first frame's size)")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail when a frame size differs from the tile size")
	fs.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if glyph == "" {
		fs.Usage()
		return errors.New("sprite: -glyph is required")
	}

	logger, _, err := logging.New(logLevel, "")
	if err != nil {
		return err
	}
	geyserpack.SetLogger(logger)

	c, err := geyserpack.NewConverter(cfg)
	if err != nil {
		return err
	}
	res, err := c.Sprite(ctx, glyph, tile)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "%s: %d frames, %v (%d skipped)\n", res.Path, res.Frames, res.Size, res.Skipped)
	return nil
}
