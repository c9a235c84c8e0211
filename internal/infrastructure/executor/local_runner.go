package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/ports"
)

// LocalRunner runs commands directly on the host, without a shell.
type LocalRunner struct {
	env []string
}

// NewLocalRunner builds a runner; extraEnv entries are appended to the inherited environment.
func NewLocalRunner(extraEnv ...string) *LocalRunner {
	return &LocalRunner{env: extraEnv}
}

// Run implements ports.CommandRunner. A non-zero exit is reported in the result
// and as an *exec.ExitError; a context deadline sets TimedOut.
func (r *LocalRunner) Run(ctx context.Context, name string, args ...string) (domain.ExecutionResult, error) {
	c := exec.CommandContext(ctx, name, args...)
	if len(r.env) > 0 {
		c.Env = append(c.Environ(), r.env...)
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.ExecutionResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: duration,
		ExitCode:   -1,
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.DeadlineExceeded) {
		result.TimedOut = true
		return result, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, err
	}
	if err != nil {
		return result, err
	}
	result.ExitCode = 0
	return result, nil
}

// LookPath implements ports.CommandRunner.
func (r *LocalRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

var _ ports.CommandRunner = (*LocalRunner)(nil)
