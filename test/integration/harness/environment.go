package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// DefaultOwner is the owner every test environment runs as unless overridden
const DefaultOwner = "tester"

// TestEnvironment provides an isolated test environment with its own SHIFTCLOCK_HOME.
type TestEnvironment struct {
	Home     string
	extraEnv map[string]string
	tb       testing.TB
}

// NewTestEnvironment creates an isolated test environment with a temp SHIFTCLOCK_HOME.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		Home:     tb.TempDir(),
		extraEnv: make(map[string]string),
		tb:       tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out SHIFTCLOCK_* variables and sets:
//   - SHIFTCLOCK_HOME to the temp directory
//   - SHIFTCLOCK_DEBUG to empty string (disables debug logging)
//   - SHIFTCLOCK_OWNER to DefaultOwner
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+3+len(e.extraEnv))

	for _, kv := range os.Environ() {
		key := strings.SplitN(kv, "=", 2)[0]
		if strings.HasPrefix(key, "SHIFTCLOCK_") {
			continue
		}
		if _, overridden := e.extraEnv[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"SHIFTCLOCK_HOME="+e.Home,
		"SHIFTCLOCK_DEBUG=",
	)
	if _, ok := e.extraEnv["SHIFTCLOCK_OWNER"]; !ok {
		env = append(env, "SHIFTCLOCK_OWNER="+DefaultOwner)
	}

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// DBPath returns the path to the test database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.Home, "state.db")
}

// SettingsPath returns the path to the test settings file.
func (e *TestEnvironment) SettingsPath() string {
	return filepath.Join(e.Home, "settings.json")
}

// WriteSettings writes settings.json into the test home.
func (e *TestEnvironment) WriteSettings(content string) {
	e.tb.Helper()
	if err := os.WriteFile(e.SettingsPath(), []byte(content), 0644); err != nil {
		e.tb.Fatalf("Failed to write settings.json: %v", err)
	}
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}
