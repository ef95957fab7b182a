package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskmeter/taskmeter/packages/api"
)

// Entry is one line of a content manifest
type Entry struct {
	Name     string
	Checksum string
	Size     int64
}

// ParseManifest splits manifest text into entries. Each line is
// "name,checksum,size"; empty trailing lines are skipped, anything else
// malformed is an error.
func ParseManifest(text string) ([]Entry, error) {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed manifest line %q", line)
		}
		size, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed size in manifest line %q: %w", line, err)
		}
		entries = append(entries, Entry{
			Name:     fields[0],
			Checksum: fields[1],
			Size:     size,
		})
	}
	return entries, nil
}

// FetchManifest downloads and parses a manifest from url
func FetchManifest(ctx context.Context, url string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &api.StatusError{
			Method:     http.MethodGet,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	return ParseManifest(string(body))
}
