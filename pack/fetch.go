package pack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gogpu/geyserpack/internal/logging"
)

// MaxPackSize bounds the number of bytes read from any pack source.
const MaxPackSize = 1 << 30

// Sentinel errors for pack package.
var (
	// ErrNoSource is returned when no pack URL was configured.
	ErrNoSource = errors.New("pack: no source URL")

	// ErrTooLarge is returned when a pack or one of its entries exceeds MaxPackSize.
	ErrTooLarge = errors.New("pack: archive exceeds size limit")

	// ErrUnsupportedScheme is returned for URL schemes Fetch cannot read.
	ErrUnsupportedScheme = errors.New("pack: unsupported URL scheme")
)

// StatusError is returned when an HTTP source answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pack: GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Fetcher reads pack archives from the supported sources:
//
//	http://, https://   plain GET
//	s3://bucket/key     AWS S3 with the default credential chain
//	gs://bucket/object  Google Cloud Storage with application default credentials
//	file://path, path   local file
type Fetcher struct {
	// HTTPClient is used for http(s) sources. nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Fetch reads the whole archive at rawURL using a zero Fetcher.
func Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var f Fetcher
	return f.Fetch(ctx, rawURL)
}

// Fetch reads the whole archive at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrNoSource
	}

	u, err := url.Parse(rawURL)
	if err != nil || len(u.Scheme) <= 1 {
		// No scheme, or a Windows drive letter: treat as a local path.
		return readLimited(openFile(rawURL))
	}

	logging.Logger().Info("pack: fetching", "scheme", u.Scheme, "host", u.Host)

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, rawURL)
	case "s3":
		return fetchS3(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	case "gs":
		return fetchGCS(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	case "file":
		return readLimited(openFile(filePath(u)))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	client := f.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("pack: create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pack: GET %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return readLimited(resp.Body, nil)
}

func fetchS3(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("pack: s3 URL needs bucket and key")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("pack: load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("pack: get s3://%s/%s: %w", bucket, key, err)
	}
	return readLimited(out.Body, nil)
}

func fetchGCS(ctx context.Context, bucket, object string) ([]byte, error) {
	if bucket == "" || object == "" {
		return nil, fmt.Errorf("pack: gs URL needs bucket and object")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("pack: create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("pack: read gs://%s/%s: %w", bucket, object, err)
	}
	return readLimited(r, nil)
}

// filePath returns the local path named by a file URL. "localhost" and an
// empty host mean the local machine; any other host is read as the first
// segment of a relative path, so file://dir/pack.zip opens dir/pack.zip.
func filePath(u *url.URL) string {
	if u.Host == "" || u.Host == "localhost" {
		return u.Path
	}
	return u.Host + u.Path
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("pack: open %s: %w", path, err)
	}
	return f, nil
}

// readLimited drains and closes rc, failing with ErrTooLarge past MaxPackSize.
func readLimited(rc io.ReadCloser, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, MaxPackSize+1))
	if err != nil {
		return nil, fmt.Errorf("pack: read: %w", err)
	}
	if len(data) > MaxPackSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
