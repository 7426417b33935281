// Package fetch provides data fetching operations;
// it retrieves document bytes from local files, URLs and standard input, and
// lists the documents that make up a domain directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chriscorrea/termsift/internal/termerr"
)

// Size limits to prevent memory overload
const (
	MaxFileSizeBytes = 50 * 1024 * 1024  // 50MB limit for files
	MaxHTTPSizeBytes = 100 * 1024 * 1024 // 100MB limit for HTTP content (may not have Content-Length)
)

// HTTPRequestTimeout bounds a whole HTTP fetch.
const HTTPRequestTimeout = 30 * time.Second

// specific timeout thresholds (based on HTTPRequestTimeout)
var (
	HTTPDialTimeout           = HTTPRequestTimeout / 6 // connecting
	HTTPTLSTimeout            = HTTPRequestTimeout / 6 // TLS handshake
	HTTPResponseHeaderTimeout = HTTPRequestTimeout / 2 // usually the slowest phase
)

// SupportedExtensions lists the document file types a domain directory may hold.
var SupportedExtensions = map[string]struct{}{
	".xml":  {},
	".html": {},
	".htm":  {},
}

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q: %w", l.source, termerr.ErrSourceTooLarge)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is shared and safe for concurrent use across domain workers.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: HTTPDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   HTTPTLSTimeout,
		ResponseHeaderTimeout: HTTPResponseHeaderTimeout,
		// each source is fetched once, so idle connections only pile up
		DisableKeepAlives: true,
	},
}

// IsURL reports whether source is an http or https URL.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// GetContent retrieves content from a source and returns an io.ReadCloser.
// It supports three types of sources:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		// piped input gets the same cap as a local file
		return &limitedReadCloser{
			ReadCloser: io.NopCloser(os.Stdin),
			N:          MaxFileSizeBytes,
			source:     "stdin",
		}, nil
	case IsURL(source):
		return fetchURL(ctx, source)
	default:
		return fetchFile(ctx, source)
	}
}

// fetchURL retrieves content from an HTTP or HTTPS URL.
func fetchURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "termsift/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d %s", url, resp.StatusCode, resp.Status)
	}

	// reject early when the server announces an oversized body; chunked
	// responses are caught by the limited reader instead
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content of %d bytes: %w", size, termerr.ErrSourceTooLarge)
		}
	}

	return &limitedReadCloser{
		ReadCloser: resp.Body,
		N:          MaxHTTPSizeBytes,
		source:     url,
	}, nil
}

// fetchFile opens a local file for reading.
// ctx is accepted for API consistency but not used for local file operations.
func fetchFile(ctx context.Context, path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%q is a directory: %w", path, termerr.ErrUnsupportedSource)
	}

	// check size before opening
	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is %d bytes: %w", path, fileInfo.Size(), termerr.ErrSourceTooLarge)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	return file, nil
}

// ExpandDomainDir returns the supported document files directly inside dir,
// sorted by name.
func ExpandDomainDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read domain directory %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		// domain directories are flat; subdirectories are ignored
		if e.IsDir() {
			continue
		}
		if _, ok := SupportedExtensions[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Fingerprint describes a local file for cache keys by its size and
// modification time. Other sources are returned unchanged.
func Fingerprint(source string) string {
	if source == "-" || IsURL(source) {
		return source
	}
	info, err := os.Stat(source)
	if err != nil {
		// a missing file fails later in GetContent
		return source
	}
	return fmt.Sprintf("%s:%d:%d", source, info.Size(), info.ModTime().UnixNano())
}
