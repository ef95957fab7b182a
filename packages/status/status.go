// Package status persists collected status data as a JSON file between runs.
//
// The file is a JSON array. A missing file means "no prior data", and every
// save rewrites the whole file with 4-space indentation (object keys come
// out sorted, which encoding/json guarantees for maps).
package status

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads status data from path. A missing file yields an empty slice.
func Load(path string) ([]any, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	var data []any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse status file %s: %w", path, err)
	}
	return data, nil
}

// Save rewrites path with the full status data
func Save(path string, data []any) error {
	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode status data: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write status file: %w", err)
	}
	return nil
}

// Session loads status data on open and always saves it back on close,
// whether or not the run in between succeeded.
type Session struct {
	path string
	Data []any
}

// Open loads existing status data (or starts empty) for path
func Open(path string) (*Session, error) {
	data, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Session{path: path, Data: data}, nil
}

// Append adds one record to the session data
func (s *Session) Append(v any) {
	s.Data = append(s.Data, v)
}

// Close saves the session data back to its file
func (s *Session) Close() error {
	return Save(s.path, s.Data)
}
