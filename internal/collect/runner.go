// Package collect gathers security-posture evidence from the local host.
//
// The only OS interaction happens through the Runner interface: PowerShell
// queries for structured evidence and plain command execution for tooling
// like manage-bde. Everything above the Runner normalizes raw process output
// into the availability-shaped sections in the evidence package.
package collect

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// Adapter sentinel exit codes. A missing backend and a timed-out query are
// reported in-band so the normalizer can treat them like any other failure.
const (
	ExitMissing = 127
	ExitTimeout = 124
)

// Fallback messages for the sentinel exit codes.
const (
	msgPowerShellMissing = "PowerShell not found."
	msgTimeout           = "PowerShell command timed out."
)

// Result is the raw outcome of one adapter invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Ok reports whether the invocation produced usable output.
func (r Result) Ok() bool { return r.ExitCode == 0 && r.Stdout != "" }

// Runner executes OS-level queries. Query runs a PowerShell command; Exec
// runs an arbitrary tool with combined output. Both are single-attempt and
// bounded by the given timeout; a timed-out child process is killed and
// reaped, never left orphaned.
type Runner interface {
	Query(ctx context.Context, command string, timeout time.Duration) Result
	Exec(ctx context.Context, timeout time.Duration, name string, args ...string) Result
}

// PowerShellRunner shells out to the PowerShell executable with -NoProfile
// for speed and repeatability.
type PowerShellRunner struct {
	exe string
}

// NewPowerShellRunner creates a runner for the given executable name
// (normally "powershell", resolved via PATH).
func NewPowerShellRunner(exe string) *PowerShellRunner {
	if exe == "" {
		exe = "powershell"
	}
	return &PowerShellRunner{exe: exe}
}

// Query runs a PowerShell command and captures stdout and stderr separately.
// A missing executable maps to ExitMissing and a deadline to ExitTimeout,
// both with no partial output.
func (r *PowerShellRunner) Query(ctx context.Context, command string, timeout time.Duration) Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.exe,
		"-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return Result{ExitCode: ExitTimeout, Stderr: msgTimeout}
	}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Result{ExitCode: ExitMissing, Stderr: msgPowerShellMissing}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				ExitCode: exitErr.ExitCode(),
				Stdout:   strings.TrimSpace(stdout.String()),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return Result{ExitCode: 1, Stderr: err.Error()}
	}

	return Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
}

// Exec runs a non-PowerShell tool with combined output, used for evidence
// sources like manage-bde that emit free text. A missing tool maps to
// ExitMissing with an empty Stdout.
func (r *PowerShellRunner) Exec(ctx context.Context, timeout time.Duration, name string, args ...string) Result {
	if _, err := exec.LookPath(name); err != nil {
		return Result{ExitCode: ExitMissing, Stderr: name + " not found."}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return Result{ExitCode: ExitTimeout, Stderr: msgTimeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		code := 1
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return Result{ExitCode: code, Stderr: strings.TrimSpace(string(output))}
	}
	return Result{Stdout: strings.TrimSpace(string(output))}
}
