package pack

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

func makeZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLayout(t *testing.T) {
	l := Layout{Root: "work"}
	tests := []struct {
		got, want string
	}{
		{l.PackDir(), filepath.Join("work", "pack")},
		{l.AssetsDir(), filepath.Join("work", "pack", "assets")},
		{l.ImagesDir("E0"), filepath.Join("work", "images", "E0")},
		{l.ExportDir("E0"), filepath.Join("work", "export", "E0")},
		{l.FontDir(), filepath.Join("work", "staging", "target", "rp", "font")},
		{l.TexturesDir(), filepath.Join("work", "staging", "target", "rp", "textures")},
		{l.AttachablesDir(), filepath.Join("work", "staging", "target", "rp", "attachables")},
		{l.Asset("ns", "textures", "font/a.png"), filepath.Join("work", "pack", "assets", "ns", "textures", "font", "a.png")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		in, ns, path string
	}{
		{"custom:font/a.png", "custom", "font/a.png"},
		{"font/a.png", "minecraft", "font/a.png"},
		{":font/a.png", "minecraft", "font/a.png"},
	}
	for _, tt := range tests {
		ns, path := SplitLocation(tt.in)
		if ns != tt.ns || path != tt.path {
			t.Errorf("SplitLocation(%q) = (%q,%q), want (%q,%q)", tt.in, ns, path, tt.ns, tt.path)
		}
	}
}

func TestExtract(t *testing.T) {
	data := makeZip(t, map[string]string{
		"pack.mcmeta":                           `{"pack":{}}`,
		"assets/minecraft/font/default.json":    `{"providers":[]}`,
		"assets/custom/textures/font/glyph.png": "png",
	})
	dst := t.TempDir()

	n, err := Extract(data, dst)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 files, got %d", n)
	}
	got, err := os.ReadFile(filepath.Join(dst, "assets", "minecraft", "font", "default.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"providers":[]}` {
		t.Errorf("content = %q", got)
	}
}

func TestExtract_RejectsTraversal(t *testing.T) {
	for _, name := range []string{"../evil.txt", "a/../../evil.txt", "/abs.txt"} {
		data := makeZip(t, map[string]string{name: "x"})
		_, err := Extract(data, t.TempDir())
		var ue *UnsafePathError
		if !errors.As(err, &ue) {
			t.Errorf("%q: expected *UnsafePathError, got %v", name, err)
		}
	}
}

func TestExtract_EntryTooLarge(t *testing.T) {
	orig := maxEntrySize
	maxEntrySize = 8
	t.Cleanup(func() { maxEntrySize = orig })

	dst := t.TempDir()
	data := makeZip(t, map[string]string{"big.bin": "0123456789"})
	_, err := Extract(data, dst)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "big.bin")); !os.IsNotExist(err) {
		t.Errorf("truncated entry left on disk: %v", err)
	}

	// An entry exactly at the limit is accepted.
	data = makeZip(t, map[string]string{"ok.bin": "01234567"})
	if n, err := Extract(data, dst); err != nil || n != 1 {
		t.Errorf("Extract at limit = %d, %v", n, err)
	}
}

func TestExtract_NotZip(t *testing.T) {
	if _, err := Extract([]byte("plain text"), t.TempDir()); err == nil {
		t.Error("expected error for non-zip data")
	}
}

func TestFilePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"file:///abs/pack.zip", "/abs/pack.zip"},
		{"file://localhost/abs/pack.zip", "/abs/pack.zip"},
		{"file://relative/pack.zip", "relative/pack.zip"},
		{"file://pack.zip", "pack.zip"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := filePath(u); got != tt.want {
			t.Errorf("filePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetch_RelativeFileURL(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.MkdirAll("relative", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("relative", "pack.zip"), []byte("zipdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := Fetch(context.Background(), "file://relative/pack.zip")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != "zipdata" {
		t.Errorf("got %q", data)
	}
}

func TestFetch_Empty(t *testing.T) {
	if _, err := Fetch(context.Background(), "  "); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
}

func TestFetch_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.zip")
	if err := os.WriteFile(path, []byte("zipdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, u := range []string{path, "file://" + filepath.ToSlash(path)} {
		data, err := Fetch(context.Background(), u)
		if err != nil {
			t.Fatalf("Fetch(%q) failed: %v", u, err)
		}
		if string(data) != "zipdata" {
			t.Errorf("Fetch(%q) = %q", u, data)
		}
	}
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pack.zip" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("archive"))
	}))
	defer srv.Close()

	f := &Fetcher{HTTPClient: srv.Client()}
	data, err := f.Fetch(context.Background(), srv.URL+"/pack.zip")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != "archive" {
		t.Errorf("data = %q", data)
	}

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.zip")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 StatusError, got %v", err)
	}
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	_, err := Fetch(context.Background(), "ftp://example.com/pack.zip")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("expected ErrUnsupportedScheme, got %v", err)
	}
}

func TestDownload(t *testing.T) {
	data := makeZip(t, map[string]string{"assets/minecraft/font/default.json": "{}"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "pack")
	n, err := Download(context.Background(), &Fetcher{HTTPClient: srv.Client()}, srv.URL, dst)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 file, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dst, "assets", "minecraft", "font", "default.json")); err != nil {
		t.Error(err)
	}
}
