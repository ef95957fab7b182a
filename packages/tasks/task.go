// Package tasks models task records from the task service and polls them
// to completion.
package tasks

import (
	"time"

	"github.com/tidwall/gjson"
)

// TimeFormat is the wire format for all service timestamps,
// e.g. "2020-01-01T00:00:05.000000Z".
const TimeFormat = "2006-01-02T15:04:05.000000Z"

// Task states the service never leaves once reached
const (
	StateFailed    = "failed"
	StateCancelled = "cancelled"
	StateCompleted = "completed"
)

// IsTerminal reports whether polling can stop at this state
func IsTerminal(state string) bool {
	switch state {
	case StateFailed, StateCancelled, StateCompleted:
		return true
	}
	return false
}

// Task is one task record as reported by the service. Timestamp fields stay
// verbatim strings so tables can echo exactly what the service said; parse
// them on demand with the *Time accessors.
type Task struct {
	Href       string `json:"_href"`
	Created    string `json:"_created"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	State      string `json:"state"`
}

// FromJSON extracts a task record from a service response body
func FromJSON(body []byte) *Task {
	doc := gjson.ParseBytes(body)
	return &Task{
		Href:       doc.Get("_href").String(),
		Created:    doc.Get("_created").String(),
		StartedAt:  doc.Get("started_at").String(),
		FinishedAt: doc.Get("finished_at").String(),
		State:      doc.Get("state").String(),
	}
}

// AsMap returns the record with its wire field names, for status-file
// persistence (maps keep JSON output keys sorted).
func (t *Task) AsMap() map[string]any {
	return map[string]any{
		"_href":       t.Href,
		"_created":    t.Created,
		"started_at":  t.StartedAt,
		"finished_at": t.FinishedAt,
		"state":       t.State,
	}
}

// ParseTime parses a wire-format timestamp
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeFormat, s)
}

// FormatTime renders an instant back into the wire format
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// CreatedTime parses the _created field
func (t *Task) CreatedTime() (time.Time, error) {
	return ParseTime(t.Created)
}

// StartedTime parses the started_at field
func (t *Task) StartedTime() (time.Time, error) {
	return ParseTime(t.StartedAt)
}

// FinishedTime parses the finished_at field
func (t *Task) FinishedTime() (time.Time, error) {
	return ParseTime(t.FinishedAt)
}

// WaitingTime returns started_at - _created in seconds. Negative values from
// clock skew are passed through untouched.
func (t *Task) WaitingTime() (float64, error) {
	created, err := t.CreatedTime()
	if err != nil {
		return 0, err
	}
	started, err := t.StartedTime()
	if err != nil {
		return 0, err
	}
	return started.Sub(created).Seconds(), nil
}

// ServiceTime returns finished_at - started_at in seconds. Negative values
// from clock skew are passed through untouched.
func (t *Task) ServiceTime() (float64, error) {
	started, err := t.StartedTime()
	if err != nil {
		return 0, err
	}
	finished, err := t.FinishedTime()
	if err != nil {
		return 0, err
	}
	return finished.Sub(started).Seconds(), nil
}
