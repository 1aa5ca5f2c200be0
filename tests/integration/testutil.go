// Package integration runs the rlcalc binary end to end.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// rlcalcBin is the path to the built rlcalc binary.
	rlcalcBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
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
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv is an isolated config directory and environment for one test.
type TestEnv struct {
	t      *testing.T
	Config string
	Env    []string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build rlcalc: %v", buildErr)
	}
	if rlcalcBin == "" {
		t.Fatal("rlcalc binary not built (rlcalcBin is empty)")
	}

	return &TestEnv{t: t, Config: filepath.Join(t.TempDir(), "config")}
}

// WriteConfig writes config.yaml into the environment's config directory.
func (e *TestEnv) WriteConfig(content string) {
	e.t.Helper()
	if err := os.MkdirAll(e.Config, 0o755); err != nil {
		e.t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.Config, "config.yaml"), []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write config: %v", err)
	}
}

// CmdResult holds the result of an rlcalc execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// cleanEnv returns os.Environ() without RLCALC_* and XDG_* variables.
func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "RLCALC_") || strings.HasPrefix(kv, "XDG_") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

// Run executes rlcalc with the given stdin and arguments.
func (e *TestEnv) Run(stdin string, args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config}, args...)
	cmd := exec.Command(rlcalcBin, allArgs...)
	cmd.Env = append(cleanEnv(), e.Env...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run rlcalc: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes rlcalc and fails the test on a non-zero exit.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run("", args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("rlcalc %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}
