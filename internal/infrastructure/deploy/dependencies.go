package deploy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/ports"
)

// PipInstaller installs interpreter packages with "<python> -m pip install".
type PipInstaller struct {
	runner   ports.CommandRunner
	progress ports.Progress
	packages []string
	timeout  time.Duration
	logger   ports.Logger
}

// NewPipInstaller builds an installer; progress may be nil.
func NewPipInstaller(runner ports.CommandRunner, progress ports.Progress, packages []string, timeout time.Duration, logger ports.Logger) *PipInstaller {
	if timeout <= 0 {
		timeout = domain.DefaultDependencyTimeout
	}
	return &PipInstaller{runner: runner, progress: progress, packages: packages, timeout: timeout, logger: logger}
}

// DefaultPackages returns the packages the payload needs on goos.
func DefaultPackages(goos string) []string {
	if goos == "windows" {
		return []string{"windows-curses"}
	}
	return nil
}

// Required reports whether any package is configured.
func (p *PipInstaller) Required() bool {
	return len(p.packages) > 0
}

// Install runs pip while the progress indicator renders.
func (p *PipInstaller) Install(ctx context.Context, plan domain.InstallationPlan, interpreter string) error {
	if !p.Required() {
		return nil
	}
	name, args := p.command(plan, interpreter)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if p.progress != nil {
		p.progress.Start()
	}
	result, err := p.runner.Run(ctx, name, args...)
	if p.progress != nil {
		p.progress.Stop()
	}

	if p.logger != nil {
		p.logger.Debug("dependency install finished", map[string]interface{}{
			"packages":    strings.Join(p.packages, ","),
			"exit_code":   result.ExitCode,
			"duration_ms": result.DurationMS,
		})
	}
	if result.TimedOut {
		return fmt.Errorf("pip install timed out after %s", p.timeout)
	}
	if err != nil {
		detail := lastLine(result.Stderr)
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Errorf("pip install %s: %s", strings.Join(p.packages, " "), detail)
	}
	return nil
}

func (p *PipInstaller) command(plan domain.InstallationPlan, interpreter string) (string, []string) {
	args := []string{"-m", "pip", "install", "--disable-pip-version-check"}
	if plan.Scope == domain.ScopeUser {
		args = append(args, "--user")
	}
	args = append(args, p.packages...)
	if plan.RequiresElevation {
		return "sudo", append([]string{"--", interpreter}, args...)
	}
	return interpreter, args
}

func lastLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

var _ ports.DependencyInstaller = (*PipInstaller)(nil)
