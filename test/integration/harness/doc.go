// Package harness provides utilities for integration testing the shiftclock CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - SHIFTCLOCK_HOME: Isolated per test (temp directory)
//   - SHIFTCLOCK_DEBUG: Disabled to reduce noise
//   - SHIFTCLOCK_OWNER: Fixed so tests do not depend on the OS user
package harness
