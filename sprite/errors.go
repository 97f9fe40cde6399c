package sprite

import (
	"errors"
	"fmt"
	"image"
)

// Sentinel errors for sprite package.
var (
	// ErrEmptyInput is matched by EmptyInputError via errors.Is.
	ErrEmptyInput = errors.New("sprite: no frames found for glyph")

	// ErrInvalidGlyph is returned when a glyph identifier cannot be used
	// as part of a file name.
	ErrInvalidGlyph = errors.New("sprite: invalid glyph identifier")
)

// EmptyInputError is returned when a glyph group has no decodable frames.
type EmptyInputError struct {
	Glyph   string
	Dir     string
	Skipped int // files that failed to decode
}

func (e *EmptyInputError) Error() string {
	msg := "sprite: no frames found"
	if e.Glyph != "" {
		msg += " for glyph " + e.Glyph
	}
	if e.Dir != "" {
		msg += " in " + e.Dir
	}
	if e.Skipped > 0 {
		msg += fmt.Sprintf(" (%d undecodable files)", e.Skipped)
	}
	return msg
}

// Is reports whether target is ErrEmptyInput.
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

// DecodeError describes a source file that could not be decoded as an image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return "sprite: decode " + e.Path + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SizeMismatchError is returned in strict mode when the requested tile size
// differs from the size of the first frame.
type SizeMismatchError struct {
	Frame string
	Want  image.Point
	Got   image.Point
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("sprite: tile size %dx%d does not match frame %s (%dx%d)",
		e.Want.X, e.Want.Y, e.Frame, e.Got.X, e.Got.Y)
}

// OptionsError represents an invalid Options field.
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return "sprite: invalid options." + e.Field + ": " + e.Reason
}
