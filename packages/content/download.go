// Package content fetches published content from the content server and
// verifies what arrived.
package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taskmeter/taskmeter/packages/api"
	"github.com/taskmeter/taskmeter/packages/stats"
)

// JoinURL joins URL fragments with single slashes regardless of how the
// fragments are decorated.
func JoinURL(parts ...string) string {
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		trimmed = append(trimmed, p)
	}
	return strings.Join(trimmed, "/")
}

// SizeMismatchError means the downloaded byte count differed from the size
// the manifest promised. This is a broken publish, not a transient failure.
type SizeMismatchError struct {
	Name string
	Got  int64
	Want int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("downloaded %s: got %d bytes, expected %d", e.Name, e.Got, e.Want)
}

// Downloader fetches files from the content server
type Downloader struct {
	addr       string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type DownloaderOption func(*Downloader)

func NewDownloader(addr string, opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		addr: addr,
		httpClient: &http.Client{
			Timeout: api.DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// WithRateLimit paces batch downloads to at most rps requests per second
func WithRateLimit(rps float64) DownloaderOption {
	return func(d *Downloader) {
		d.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithDownloadHTTPClient replaces the underlying http.Client, mostly for tests
func WithDownloadHTTPClient(hc *http.Client) DownloaderOption {
	return func(d *Downloader) {
		d.httpClient = hc
	}
}

// Download fetches base/name from the content server into a temporary file
// that is always cleaned up, checks the byte count against the expected
// size, and returns how long the fetch took. A size mismatch is a hard
// failure of the run.
func (d *Downloader) Download(ctx context.Context, base, name string, size int64) (time.Duration, error) {
	fullURL := JoinURL(d.addr, base, name)
	slog.Debug("downloading", "url", fullURL, "expected_size", size)

	tmp, err := os.CreateTemp("", "taskmeter-download-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &api.StatusError{
			Method:     http.MethodGet,
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	written, err := io.Copy(tmp, resp.Body)
	duration := time.Since(start)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", fullURL, err)
	}

	if written != size {
		return 0, &SizeMismatchError{Name: name, Got: written, Want: size}
	}

	return duration, nil
}

// DownloadAll fetches every manifest entry under base in order, feeding each
// latency into rec and returning the per-file durations. The first failure
// aborts the batch.
func (d *Downloader) DownloadAll(ctx context.Context, base string, entries []Entry, rec *stats.LatencyRecorder) ([]time.Duration, error) {
	durations := make([]time.Duration, 0, len(entries))
	for _, e := range entries {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		duration, err := d.Download(ctx, base, e.Name, e.Size)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			rec.Record(duration)
		}
		durations = append(durations, duration)
	}
	return durations, nil
}
