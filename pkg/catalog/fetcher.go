package catalog

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// FetchTimeout bounds a catalog download.
const FetchTimeout = 30 * time.Second

// MaxCatalogBytes is the default size cap for a catalog document.
const MaxCatalogBytes int64 = 64 << 20

// Fetcher reads catalog documents from disk or from the content store over http(s).
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// FetchOption configures a Fetcher.
type FetchOption func(*Fetcher)

// WithMaxBytes caps the size of a fetched document.
func WithMaxBytes(n int64) (opt FetchOption) {
	opt = func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
	return opt
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) (opt FetchOption) {
	opt = func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
	return opt
}

// NewFetcher creates a fetcher with a FetchTimeout client and the MaxCatalogBytes cap.
func NewFetcher(opts ...FetchOption) (fetcher *Fetcher) {
	fetcher = &Fetcher{
		client:   &http.Client{Timeout: FetchTimeout},
		maxBytes: MaxCatalogBytes,
	}
	for _, opt := range opts {
		opt(fetcher)
	}
	return fetcher
}

// FetchWithContext retrieves a catalog document with the default fetcher.
func FetchWithContext(ctx context.Context, location string) (content []byte, err error) {
	content, err = NewFetcher().Fetch(ctx, location)
	return content, err
}

// Fetch retrieves a JSON document from a file path or an http(s) URL.
func (f *Fetcher) Fetch(ctx context.Context, location string) (content []byte, err error) {
	parsedURL, urlErr := url.Parse(location)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		content, err = f.download(ctx, location)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch catalog from URL: %s", location)
		}
		return content, err
	}

	content, err = f.readFile(location)
	if err != nil {
		err = errors.Wrapf(err, "failed to read catalog file: %s", location)
	}

	return content, err
}

func (f *Fetcher) readFile(path string) (content []byte, err error) {
	var file *os.File
	file, err = os.Open(path)
	if err != nil {
		return content, err
	}
	defer file.Close()

	content, err = f.readCapped(file)
	if err != nil {
		return content, err
	}

	err = checkDocument(content)

	return content, err
}

func (f *Fetcher) download(ctx context.Context, urlStr string) (content []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "reviewrank/1.0")
	req.Header.Set("Accept", "application/json")

	var resp *http.Response
	resp, err = f.client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("content store answered with status %d", resp.StatusCode)
		return content, err
	}

	contentType := resp.Header.Get("Content-Type")
	if !jsonMediaType(contentType) {
		err = errors.Errorf("unexpected content type %q, want JSON", contentType)
		return content, err
	}

	if resp.ContentLength > f.maxBytes {
		err = errors.Errorf("catalog of %d bytes exceeds the %d byte limit", resp.ContentLength, f.maxBytes)
		return content, err
	}

	content, err = f.readCapped(resp.Body)
	if err != nil {
		return content, err
	}

	err = checkDocument(content)

	return content, err
}

// readCapped reads at most maxBytes, failing rather than truncating a larger document.
func (f *Fetcher) readCapped(r io.Reader) (content []byte, err error) {
	content, err = io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		err = errors.Wrap(err, "failed to read catalog")
		return content, err
	}

	if int64(len(content)) > f.maxBytes {
		err = errors.Errorf("catalog exceeds the %d byte limit", f.maxBytes)
		return nil, err
	}

	return content, err
}

// checkDocument rejects empty content and anything that cannot be a JSON document.
func checkDocument(content []byte) (err error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		err = errors.New("catalog is empty")
		return err
	}

	if trimmed[0] != '{' && trimmed[0] != '[' {
		err = errors.New("catalog is not a JSON document")
		return err
	}

	return err
}

// jsonMediaType accepts JSON types, generic types servers send for files, and
// a missing header.
func jsonMediaType(header string) (ok bool) {
	if strings.TrimSpace(header) == "" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return ok
	}

	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		ok = true
	case mediaType == "text/plain", mediaType == "application/octet-stream":
		ok = true
	}

	return ok
}
