// Package image provides the decode, pixel copy and PNG output helpers
// shared by the sprite and font packages.
package image

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrEmptyData is returned when an image file has no content.
	ErrEmptyData = errors.New("image: empty data")

	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")
)

// Decode decodes an image from r, auto-detecting the format.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func Decode(r io.Reader) (image.Image, string, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("image: decode: %w", ErrEmptyData)
	}

	img, format, err := image.Decode(br)
	if err != nil {
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}
	return img, format, nil
}

// Load opens, decodes and closes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := Decode(f)
	return img, err
}

// NewTransparent allocates a fully transparent NRGBA image of the given size.
func NewTransparent(width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return image.NewNRGBA(image.Rect(0, 0, width, height)), nil
}

// ToNRGBA returns img as non-premultiplied RGBA. NRGBA inputs are returned
// unchanged; everything else is converted into a new image whose origin is
// (0, 0).
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Copy copies the pixels of src inside sr to dst with the top-left corner at
// dp. Pixels are copied verbatim (no blending); anything falling outside src
// or dst is clipped.
func Copy(dst *image.NRGBA, dp image.Point, src *image.NRGBA, sr image.Rectangle) {
	sr = sr.Intersect(src.Rect)
	r := image.Rectangle{Min: dp, Max: dp.Add(sr.Size())}.Intersect(dst.Rect)
	if r.Empty() {
		return
	}
	sp := sr.Min.Add(r.Min.Sub(dp))

	n := r.Dx() * 4
	for y := range r.Dy() {
		d := dst.PixOffset(r.Min.X, r.Min.Y+y)
		s := src.PixOffset(sp.X, sp.Y+y)
		copy(dst.Pix[d:d+n], src.Pix[s:s+n])
	}
}

// Clone returns a deep copy of img with the same bounds.
func Clone(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}

// EncodePNG encodes img as PNG to the given writer.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes img to path as PNG, creating parent directories as needed.
// The image is written to a temporary file in the same directory and renamed
// into place, so path never holds a partially written image. An existing
// file at path is replaced.
func SavePNG(path string, img image.Image) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("image: create directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	tmp := f.Name()

	if err := EncodePNG(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("image: close file: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("image: chmod: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("image: rename: %w", err)
	}
	return nil
}
