package verify

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/ports"
)

// Verifier probes the installed command without changing anything.
type Verifier struct {
	runner  ports.CommandRunner
	flag    string
	timeout time.Duration
	goos    string
	logger  ports.Logger
}

// NewVerifier builds a verifier that runs the command with flag.
func NewVerifier(runner ports.CommandRunner, flag string, timeout time.Duration, logger ports.Logger) *Verifier {
	if flag == "" {
		flag = "--version"
	}
	if timeout <= 0 {
		timeout = domain.DefaultVerifyTimeout
	}
	return &Verifier{runner: runner, flag: flag, timeout: timeout, goos: runtime.GOOS, logger: logger}
}

// Verify stats the binary path, following links, and runs the version probe.
// Only the probe's exit status is inspected.
func (v *Verifier) Verify(ctx context.Context, plan domain.InstallationPlan) domain.VerificationResult {
	path := plan.BinaryPath()
	var result domain.VerificationResult

	info, err := os.Stat(path)
	if err != nil {
		result.Details = fmt.Sprintf("%s not found: %v", path, err)
		return result
	}
	if !info.Mode().IsRegular() {
		result.Details = fmt.Sprintf("%s is not a regular file", path)
		return result
	}
	if v.goos != "windows" && info.Mode().Perm()&0o111 == 0 {
		result.Details = fmt.Sprintf("%s is not executable", path)
		return result
	}
	result.ExecutableFound = true

	probeCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()
	probe, err := v.runner.Run(probeCtx, path, v.flag)
	switch {
	case probe.TimedOut:
		result.Details = fmt.Sprintf("%s %s timed out after %s", path, v.flag, v.timeout)
	case err != nil:
		result.Details = fmt.Sprintf("%s %s exited with %d", path, v.flag, probe.ExitCode)
	default:
		result.VersionProbeOk = true
		result.Details = fmt.Sprintf("%s %s ok", path, v.flag)
	}

	if v.logger != nil {
		v.logger.Debug("verification finished", map[string]interface{}{
			"path":        path,
			"exit_code":   probe.ExitCode,
			"duration_ms": probe.DurationMS,
			"ok":          result.OK(),
		})
	}
	return result
}

var _ ports.Verifier = (*Verifier)(nil)
