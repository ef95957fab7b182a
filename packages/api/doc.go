// Package api provides the HTTP client for the task service API.
//
// It wraps the standard library's http package with the conventions the
// service expects:
//   - all paths are joined onto a configured base address
//   - any non-2xx response is returned as a *StatusError, never retried
//   - response bodies are read eagerly and exposed as JSON
//   - request durations are measured and attached to the response
package api
