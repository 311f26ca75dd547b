// Package e2etests drives a built svcparams binary against throwaway
// workspaces. Tests are skipped unless SVCPARAMS_CMD names the binary.
package e2etests

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CmdEnv names the environment variable holding the binary under test.
const CmdEnv = "SVCPARAMS_CMD"

// Runner executes svcparams commands against a sandbox directory.
type Runner struct {
	Cmd string // path to svcparams binary
}

// SetupSandbox creates a fresh workspace in a new temp directory and
// returns its path.
func (r *Runner) SetupSandbox() (string, error) {
	dir, err := os.MkdirTemp("", "svcparams-e2e-")
	if err != nil {
		return "", err
	}
	res := r.Run(dir, "", "init")
	if res.ExitCode != 0 {
		os.RemoveAll(dir)
		return "", fmt.Errorf("setup sandbox failed: exit %d\nstderr: %s", res.ExitCode, res.Stderr)
	}
	return dir, nil
}

// TeardownSandbox removes a sandbox directory.
func (r *Runner) TeardownSandbox(path string) error {
	return os.RemoveAll(path)
}

// RunResult holds the output of a command execution.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes a svcparams command with the given stdin and arguments.
// It sets SVCPARAMS_DIR to the sandbox path so the command finds the right
// .svcparams directory, and drops any other SVCPARAMS_* overrides.
func (r *Runner) Run(sandbox, stdin string, args ...string) RunResult {
	cmd := exec.Command(r.Cmd, args...)
	cmd.Env = append(cleanEnv(), "SVCPARAMS_DIR="+sandbox)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// mustRun runs a command and returns an error on a non-zero exit code.
func mustRun(r *Runner, sandbox, stdin string, args ...string) (RunResult, error) {
	res := r.Run(sandbox, stdin, args...)
	if res.ExitCode != 0 {
		return res, fmt.Errorf("svcparams %s: exit %d\nstderr: %s",
			strings.Join(args, " "), res.ExitCode, res.Stderr)
	}
	return res, nil
}

func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SVCPARAMS_") {
			continue
		}
		env = append(env, kv)
	}
	return env
}
