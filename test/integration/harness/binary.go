package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const commandTimeout = 30 * time.Second

// buildVersion is stamped into the test binary so `--version` output is predictable
const buildVersion = "integration"

var (
	binaryPath string
	buildErr   error
	buildOnce  sync.Once
)

// CommandResult is the outcome of one shiftclock invocation
type CommandResult struct {
	Args     []string
	ExitCode int
	Stderr   string
	Stdout   string
}

// String renders the invocation for failure messages
func (r CommandResult) String() string {
	return fmt.Sprintf("shiftclock %s (exit %d)\nstdout: %s\nstderr: %s",
		strings.Join(r.Args, " "), r.ExitCode, r.Stdout, r.Stderr)
}

// BuildBinary compiles ./cmd once per test run with a fixed version stamp.
// Call it from TestMain.
func BuildBinary() (string, error) {
	buildOnce.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			buildErr = err
			return
		}

		dir, err := os.MkdirTemp("", "shiftclock-integration-*")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "shiftclock")

		build := exec.Command("go", "build",
			"-ldflags", "-X main.Version="+buildVersion,
			"-o", binaryPath, "./cmd")
		build.Dir = root
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		buildErr = build.Run()
	})

	return binaryPath, buildErr
}

// CleanupBinary removes the binary built by BuildBinary
func CleanupBinary() {
	if binaryPath == "" {
		return
	}
	if err := os.RemoveAll(filepath.Dir(binaryPath)); err != nil {
		log.Printf("Warning: failed to remove test binary: %v", err)
	}
}

// RunCommand runs shiftclock with args inside env. Stdin is empty, so the
// binary never sees a terminal and skips interactive prompts.
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = env.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := CommandResult{Args: args}
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		tb.Logf("shiftclock %s timed out after %v", strings.Join(args, " "), commandTimeout)
		result.ExitCode = -1
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Logf("shiftclock %s could not run: %v", strings.Join(args, " "), err)
		result.ExitCode = -1
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}

// RunConcurrently starts n identical invocations at once and returns every result.
// Used to race writers against the same database.
func RunConcurrently(tb testing.TB, env *TestEnvironment, n int, args ...string) []CommandResult {
	tb.Helper()

	results := make([]CommandResult, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i] = RunCommand(tb, env, args...)
		}()
	}
	close(start)
	wg.Wait()
	return results
}

// moduleRoot walks up from the working directory to the directory holding go.mod
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above the test directory")
		}
		dir = parent
	}
}
