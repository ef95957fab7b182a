package tasks

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// taskSchema describes the shape a task status payload must have. The
// timestamp pattern matches the fixed six-digit-fraction wire format.
const taskSchema = `{
	"type": "object",
	"required": ["_href", "state"],
	"properties": {
		"_href": {"type": "string", "minLength": 1},
		"state": {"type": "string", "minLength": 1},
		"_created": {
			"type": "string",
			"pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}\\.[0-9]{6}Z$"
		},
		"started_at": {
			"type": ["string", "null"],
			"pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}\\.[0-9]{6}Z$"
		},
		"finished_at": {
			"type": ["string", "null"],
			"pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}\\.[0-9]{6}Z$"
		}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(taskSchema)

// ValidateTask checks a raw task payload against the expected schema.
// Useful as a conformance assertion against the service under test.
func ValidateTask(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to validate task payload: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("task payload does not match schema: %s", strings.Join(problems, "; "))
}
