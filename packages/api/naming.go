package api

import (
	"strings"

	"github.com/google/uuid"
)

// RandomName returns a short unique name for server-side objects created
// during a test run (repositories, publications and the like).
func RandomName() string {
	return "perf-" + strings.Split(uuid.New().String(), "-")[0]
}
