package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/shiftclock/internal/cmd"
)

// StatusJSON mirrors `shiftclock status --format json`
type StatusJSON struct {
	Clock         string `json:"clock"`
	Label         string `json:"label"`
	Owner         string `json:"owner"`
	SessionID     string `json:"session_id"`
	StartedAt     string `json:"started_at"`
	State         string `json:"state"`
	WorkedSeconds int64  `json:"worked_seconds"`
}

// AssertSuccess verifies the command exited 0
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Equal(tb, cmd.ExitOK, result.ExitCode, "expected success\n%s", result)
}

// AssertFailure verifies the command exited non-zero
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.NotEqual(tb, cmd.ExitOK, result.ExitCode, "expected failure\n%s", result)
}

// AssertErrorKind verifies the command failed with the exit code the CLI maps
// kind to (for example domain.ErrConflict) and printed an "Error:" line
func AssertErrorKind(tb testing.TB, result CommandResult, kind error) {
	tb.Helper()
	assert.Equal(tb, ExitCodeFor(kind), result.ExitCode, "expected a %q failure\n%s", kind, result)
	assert.Contains(tb, result.Stderr, "Error: ", "expected an error line on stderr\n%s", result)
}

// AssertStatusLine verifies stdout carries the one-line status "owner: Label HH:MM:SS"
func AssertStatusLine(tb testing.TB, result CommandResult, owner, label string) {
	tb.Helper()
	assert.Regexp(tb, `(?m)^`+owner+`: `+label+` \d{2,}:\d{2}:\d{2}`, result.Stdout,
		"expected status %q for %s\n%s", label, owner, result)
}

// AssertStatusJSON decodes status JSON from stdout and checks its state and label
func AssertStatusJSON(tb testing.TB, result CommandResult, state, label string) StatusJSON {
	tb.Helper()
	var status StatusJSON
	AssertValidJSON(tb, result, &status)
	assert.Equal(tb, state, status.State, "state\n%s", result)
	assert.Equal(tb, label, status.Label, "label\n%s", result)
	return status
}

// AssertStdoutContains verifies stdout contains expected
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected, "stdout\n%s", result)
}

// AssertStdoutNotContains verifies stdout does not contain unexpected
func AssertStdoutNotContains(tb testing.TB, result CommandResult, unexpected string) {
	tb.Helper()
	assert.NotContains(tb, result.Stdout, unexpected, "stdout\n%s", result)
}

// AssertStderrContains verifies stderr contains expected
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected, "stderr\n%s", result)
}

// AssertValidJSON unmarshals stdout into target
func AssertValidJSON(tb testing.TB, result CommandResult, target any) {
	tb.Helper()
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), target), "stdout is not JSON\n%s", result)
}

// AssertJSONContains verifies a top-level key of the JSON on stdout
func AssertJSONContains(tb testing.TB, result CommandResult, key string, expected any) {
	tb.Helper()
	var data map[string]any
	AssertValidJSON(tb, result, &data)
	assert.Equal(tb, expected, data[key], "JSON key %q\n%s", key, result)
}

// ExitCodeFor returns the exit code the CLI uses for an error of kind
func ExitCodeFor(kind error) int {
	return cmd.ExitCode(kind)
}
