package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmeter/taskmeter/packages/stats"
	"github.com/taskmeter/taskmeter/packages/tasks"
)

func sampleTasks() []*tasks.Task {
	return []*tasks.Task{
		{
			Href:       "/pulp/api/v3/tasks/1/",
			Created:    "2020-01-01T00:00:00.000000Z",
			StartedAt:  "2020-01-01T00:00:05.000000Z",
			FinishedAt: "2020-01-01T00:00:09.000000Z",
			State:      "completed",
		},
		{
			Href:       "/pulp/api/v3/tasks/2/",
			Created:    "2020-01-01T00:00:01.000000Z",
			StartedAt:  "2020-01-01T00:00:03.000000Z",
			FinishedAt: "2020-01-01T00:00:30.000000Z",
			State:      "failed",
		},
		{
			Href:       "/pulp/api/v3/tasks/3/",
			Created:    "2020-01-01T00:00:02.000000Z",
			StartedAt:  "2020-01-01T00:00:04.000000Z",
			FinishedAt: "2020-01-01T00:00:10.000000Z",
			State:      "completed",
		},
	}
}

func TestTasksTable(t *testing.T) {
	out := TasksTable(sampleTasks())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 4) // header + 3 rows
	for _, field := range []string{"task", "created", "started", "finished", "state"} {
		assert.Contains(t, lines[0], field)
	}
	assert.Equal(t,
		"/pulp/api/v3/tasks/1/\t2020-01-01T00:00:00.000000Z\t2020-01-01T00:00:05.000000Z\t2020-01-01T00:00:09.000000Z\tcompleted",
		lines[1])
}

func TestTasksTable_SkipsTimedOutEntries(t *testing.T) {
	ts := sampleTasks()
	ts = append(ts, nil)

	out := TasksTable(ts)
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 4)
}

func TestTasksMinMaxTable(t *testing.T) {
	out, err := TasksMinMaxTable(sampleTasks())
	require.NoError(t, err)

	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	require.Len(t, lines, 4) // header + 3 fields

	// min <= max for every field
	for _, line := range lines[1:] {
		cols := strings.Split(line, "\t")
		require.Len(t, cols, 3)
		min, err := tasks.ParseTime(strings.TrimSpace(cols[1]))
		require.NoError(t, err)
		max, err := tasks.ParseTime(strings.TrimSpace(cols[2]))
		require.NoError(t, err)
		assert.False(t, max.Before(min))
	}

	assert.Contains(t, out, "_created\t2020-01-01T00:00:00.000000Z\t2020-01-01T00:00:02.000000Z")
	assert.Contains(t, out, "started_at\t2020-01-01T00:00:03.000000Z\t2020-01-01T00:00:05.000000Z")
	assert.Contains(t, out, "finished_at\t2020-01-01T00:00:09.000000Z\t2020-01-01T00:00:30.000000Z")
}

func TestTasksMinMaxTable_SkipsTimedOutEntries(t *testing.T) {
	ts := sampleTasks()
	ts = append(ts, nil)

	out, err := TasksMinMaxTable(ts)
	require.NoError(t, err)
	assert.Contains(t, out, "_created\t2020-01-01T00:00:00.000000Z\t2020-01-01T00:00:02.000000Z")
}

func TestTasksMinMaxTable_NoRecords(t *testing.T) {
	_, err := TasksMinMaxTable(nil)
	assert.Error(t, err)

	// a slice of only timed-out entries has nothing to summarize either
	_, err = TasksMinMaxTable([]*tasks.Task{nil, nil})
	assert.Error(t, err)
}

func TestTasksMinMaxTable_MalformedTimestamp(t *testing.T) {
	ts := sampleTasks()
	ts[1].StartedAt = "broken"

	_, err := TasksMinMaxTable(ts)
	assert.Error(t, err)
}

func TestConsole_StatsLine(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithNoColor(true))

	c.StatsLine("waiting time", stats.Stats{Samples: 2, Min: 1, Max: 3, Mean: 2, StdDev: 1.414})

	assert.Contains(t, buf.String(), "waiting time: samples=2 min=1.000 max=3.000 mean=2.000 stdev=1.414")
}

func TestConsole_Timeouts(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(WithWriter(&buf), WithNoColor(true))

	c.Timeouts(0)
	c.Timeouts(2)

	assert.Contains(t, buf.String(), "All tasks reached a terminal state")
	assert.Contains(t, buf.String(), "2 task(s) timed out")
}
