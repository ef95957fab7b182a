package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksFromStatus(t *testing.T) {
	data := []any{
		map[string]any{
			"_href":       "/pulp/api/v3/tasks/1/",
			"_created":    "2020-01-01T00:00:00.000000Z",
			"started_at":  "2020-01-01T00:00:05.000000Z",
			"finished_at": "2020-01-01T00:00:09.000000Z",
			"state":       "completed",
		},
		map[string]any{"note": "not a task"},
		"plain string entry",
	}

	out := tasksFromStatus(data)

	require.Len(t, out, 1)
	assert.Equal(t, "/pulp/api/v3/tasks/1/", out[0].Href)
	assert.Equal(t, "completed", out[0].State)
}

func TestTasksFromStatus_Empty(t *testing.T) {
	assert.Empty(t, tasksFromStatus(nil))
	assert.Empty(t, tasksFromStatus([]any{}))
}
