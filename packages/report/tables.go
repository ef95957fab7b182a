// Package report renders task records and their timing statistics as text.
package report

import (
	"fmt"
	"time"

	"github.com/taskmeter/taskmeter/packages/tasks"
)

// TasksTable renders one row per task record with its timestamp fields
// verbatim. Nil entries (tasks that timed out while polling) are skipped.
func TasksTable(ts []*tasks.Task) string {
	out := fmt.Sprintf("%56s\t%27s\t%27s\t%27s\t%s\n",
		"task", "created", "started", "finished", "state")
	for _, t := range ts {
		if t == nil {
			continue
		}
		out += fmt.Sprintf("%s\t%s\t%s\t%s\t%s\n",
			t.Href, t.Created, t.StartedAt, t.FinishedAt, t.State)
	}
	return out
}

// minMaxFields are rendered in this order
var minMaxFields = []struct {
	name string
	get  func(*tasks.Task) string
}{
	{"_created", func(t *tasks.Task) string { return t.Created }},
	{"started_at", func(t *tasks.Task) string { return t.StartedAt }},
	{"finished_at", func(t *tasks.Task) string { return t.FinishedAt }},
}

// TasksMinMaxTable renders, per timestamp field, the earliest and latest
// instant across all task records, re-serialized in the wire format.
// Nil entries (tasks that timed out while polling) are skipped; a malformed
// timestamp or a slice with no task records fails the whole table.
func TasksMinMaxTable(ts []*tasks.Task) (string, error) {
	records := make([]*tasks.Task, 0, len(ts))
	for _, t := range ts {
		if t != nil {
			records = append(records, t)
		}
	}
	if len(records) == 0 {
		return "", fmt.Errorf("no task records to summarize")
	}

	out := fmt.Sprintf("\n%11s\t%27s\t%27s\n", "field", "min", "max")
	for _, f := range minMaxFields {
		var min, max time.Time
		for i, t := range records {
			parsed, err := tasks.ParseTime(f.get(t))
			if err != nil {
				return "", fmt.Errorf("failed to parse %s of task %s: %w", f.name, t.Href, err)
			}
			if i == 0 || parsed.Before(min) {
				min = parsed
			}
			if i == 0 || parsed.After(max) {
				max = parsed
			}
		}
		out += fmt.Sprintf("%s\t%s\t%s\n",
			f.name, tasks.FormatTime(min), tasks.FormatTime(max))
	}
	return out, nil
}
