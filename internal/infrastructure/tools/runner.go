// Package tools runs external recon binaries as bounded subprocesses.
package tools

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// LocalRunner executes tools directly (no shell) on the host.
type LocalRunner struct {
	lookPath func(string) (string, error)
	logger   ports.Logger
}

// NewLocalRunner builds a runner that resolves binaries through PATH.
func NewLocalRunner(logger ports.Logger) *LocalRunner {
	return &LocalRunner{lookPath: exec.LookPath, logger: logger}
}

// Run implements ports.ToolRunner. It never returns an error value directly;
// missing binaries, timeouts and exit codes are reported on the result.
func (r *LocalRunner) Run(ctx context.Context, inv ports.ToolInvocation) ports.ToolResult {
	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultToolTimeout
	}

	path, err := r.lookPath(inv.Name)
	if err != nil {
		return ports.ToolResult{NotFound: true, ExitCode: -1, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := exec.CommandContext(ctx, path, inv.Args...)
	c.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err = c.Run()
	result := ports.ToolResult{
		Output:   stdout.String(),
		Duration: time.Since(start),
	}
	if result.Output == "" {
		result.Output = stderr.String()
	}
	if r.logger != nil {
		r.logger.Debug("tool finished", map[string]interface{}{
			"tool":        inv.Name,
			"duration_ms": result.Duration.Milliseconds(),
		})
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		result.Err = ctx.Err()
		return result
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
		return result
	}
	if err != nil {
		result.ExitCode = -1
		result.Err = err
	}
	return result
}

// Available reports whether name resolves on PATH, and where.
func (r *LocalRunner) Available(name string) (string, bool) {
	path, err := r.lookPath(name)
	return path, err == nil
}

var _ ports.ToolRunner = (*LocalRunner)(nil)
