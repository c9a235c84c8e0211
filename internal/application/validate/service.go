package validate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/ports"
)

// Service runs environment checks. It never mutates the host.
type Service struct {
	Probe          ports.HostProbe
	Runner         ports.CommandRunner
	Logger         ports.Logger
	Candidates     []string
	Minimum        domain.RuntimeVersion
	TerminalModule string
	// SpaceTarget is where free space is measured; its nearest existing ancestor is used.
	SpaceTarget  string
	MinFreeBytes uint64
	ProbeTimeout time.Duration
}

// Validate executes checks and returns a report.
func (s *Service) Validate(ctx context.Context) domain.ValidationReport {
	report := domain.ValidationReport{}

	report.OS = domain.NormalizeOS(s.Probe.GOOS())
	if report.OS.Known() {
		report.Checks = append(report.Checks, ok("Operating system", string(report.OS)))
	} else {
		report.Checks = append(report.Checks, warn("Operating system",
			fmt.Sprintf("unrecognized host %q", s.Probe.GOOS()),
			"installation continues; desktop integration is skipped"))
	}

	runtimeInfo, runtimeCheck := s.checkRuntime(ctx)
	report.Runtime = runtimeInfo
	report.Checks = append(report.Checks, runtimeCheck)

	if runtimeInfo.Found {
		report.Checks = append(report.Checks, s.checkTerminal(ctx, runtimeInfo, report.OS))
	}

	report.Checks = append(report.Checks, s.checkDisk())

	s.log("validation finished", map[string]interface{}{
		"os":       report.OS,
		"runtime":  runtimeInfo.Version.String(),
		"fatal":    len(report.Fatal()),
		"warnings": len(report.Warnings()),
	})
	return report
}

func (s *Service) checkRuntime(ctx context.Context) (domain.RuntimeInfo, domain.HealthCheck) {
	const name = "Runtime"
	fix := fmt.Sprintf("install Python %s or newer and make sure it is on PATH", s.Minimum)

	var best domain.RuntimeInfo
	for _, candidate := range s.candidates() {
		path, err := s.Runner.LookPath(candidate)
		if err != nil {
			continue
		}
		probeCtx, cancel := context.WithTimeout(ctx, s.timeout())
		result, err := s.Runner.Run(probeCtx, path, "--version")
		cancel()
		if err != nil {
			s.log("runtime probe failed", map[string]interface{}{"candidate": candidate, "error": err.Error()})
			continue
		}
		// Python 2 prints its version on stderr.
		version, err := domain.ParseRuntimeVersion(result.Stdout + " " + result.Stderr)
		if err != nil {
			continue
		}
		info := domain.RuntimeInfo{Command: candidate, Path: path, Version: version, Found: true}
		if version.Satisfies(s.Minimum) {
			return info, ok(name, fmt.Sprintf("%s %s (%s)", candidate, version, path))
		}
		if !best.Found {
			best = info
		}
	}

	if !best.Found {
		return best, fail(name,
			fmt.Errorf("%w: tried %s", domain.ErrRuntimeMissing, strings.Join(s.candidates(), ", ")), fix)
	}
	return best, fail(name,
		fmt.Errorf("%w: found %s %s, need %s", domain.ErrRuntimeTooOld, best.Command, best.Version, s.Minimum), fix)
}

func (s *Service) checkTerminal(ctx context.Context, rt domain.RuntimeInfo, family domain.OSFamily) domain.HealthCheck {
	const name = "Terminal library"
	module := s.TerminalModule
	if module == "" {
		module = domain.DefaultTerminalModule
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()
	if _, err := s.Runner.Run(probeCtx, rt.Path, "-c", "import "+module); err == nil {
		return ok(name, module+" available")
	}

	err := fmt.Errorf("%w: %s cannot import %s", domain.ErrTerminalUnsupported, rt.Command, module)
	fix := "install the interpreter's " + module + " support"
	if family == domain.OSWindows {
		fix = "pip install windows-curses"
	}
	if !family.Known() {
		return warn(name, err.Error(), fix)
	}
	return fail(name, err, fix)
}

func (s *Service) checkDisk() domain.HealthCheck {
	const name = "Disk space"
	threshold := s.MinFreeBytes
	if threshold == 0 {
		threshold = domain.MinFreeSpaceBytes
	}
	free, err := s.Probe.FreeSpace(s.SpaceTarget)
	if err != nil {
		return warn(name, fmt.Sprintf("could not determine free space: %v", err), "")
	}
	if free < threshold {
		return warn(name,
			fmt.Sprintf("%s free at %s, below %s", humanize.IBytes(free), s.SpaceTarget, humanize.IBytes(threshold)),
			"free some disk space")
	}
	return ok(name, humanize.IBytes(free)+" free")
}

func (s *Service) candidates() []string {
	if len(s.Candidates) == 0 {
		return []string{"python3", "python"}
	}
	return s.Candidates
}

func (s *Service) timeout() time.Duration {
	if s.ProbeTimeout <= 0 {
		return domain.DefaultProbeTimeout
	}
	return s.ProbeTimeout
}

func (s *Service) log(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details, fix string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details, Fix: fix}
}

func fail(name string, err error, fix string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: err.Error(), Fix: fix, Err: err}
}

var _ ports.EnvironmentValidator = (*Service)(nil)
