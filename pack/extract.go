package pack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/gogpu/geyserpack/internal/logging"
)

// UnsafePathError is returned for archive entries that would be written
// outside the extraction directory.
type UnsafePathError struct {
	Name string
}

func (e *UnsafePathError) Error() string {
	return "pack: unsafe path in archive: " + e.Name
}

// maxEntrySize bounds the uncompressed size of a single archive entry.
var maxEntrySize int64 = MaxPackSize

// Extract unpacks the zip archive in data into dst and returns the number of
// files written. Existing files are overwritten.
func Extract(data []byte, dst string) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("pack: open archive: %w", err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, fmt.Errorf("pack: create %s: %w", dst, err)
	}

	n := 0
	for _, f := range zr.File {
		target, err := safeJoin(dst, f.Name)
		if err != nil {
			return n, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return n, fmt.Errorf("pack: create %s: %w", target, err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("pack: create %s: %w", filepath.Dir(target), err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("pack: open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("pack: create %s: %w", target, err)
	}
	n, err := io.Copy(out, io.LimitReader(rc, maxEntrySize+1))
	if err == nil && n > maxEntrySize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return fmt.Errorf("pack: extract %s: %w", f.Name, err)
	}
	return out.Close()
}

// safeJoin joins an archive entry name onto dir, rejecting names that escape it.
func safeJoin(dir, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.Contains(name, `\`) {
		return "", &UnsafePathError{Name: name}
	}
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &UnsafePathError{Name: name}
	}
	return target, nil
}

// Download fetches the archive at rawURL and extracts it into dst.
func Download(ctx context.Context, f *Fetcher, rawURL, dst string) (int, error) {
	if f == nil {
		f = &Fetcher{}
	}
	data, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	n, err := Extract(data, dst)
	if err != nil {
		return n, err
	}
	logging.Logger().Info("pack: extracted", "files", n, "dir", dst, "bytes", len(data))
	return n, nil
}
