package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/doeshing/axiom-install/internal/domain"
)

type stubProbe struct {
	goos string
	free uint64
}

func (p stubProbe) GOOS() string                     { return p.goos }
func (p stubProbe) IsElevated() bool                 { return false }
func (p stubProbe) CanWrite(string) bool             { return false }
func (p stubProbe) HomeDir() (string, error)         { return "/home/test", nil }
func (p stubProbe) FreeSpace(string) (uint64, error) { return p.free, nil }
func (p stubProbe) Getenv(string) string             { return "" }

// stubRunner answers --version with versions[name] and "-c import" with importOK.
type stubRunner struct {
	versions map[string]string
	importOK bool
	calls    []string
}

func (r *stubRunner) LookPath(name string) (string, error) {
	if _, ok := r.versions[name]; ok {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) (domain.ExecutionResult, error) {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	if len(args) > 0 && args[0] == "--version" {
		short := name[strings.LastIndex(name, "/")+1:]
		return domain.ExecutionResult{Stdout: r.versions[short] + "\n"}, nil
	}
	if r.importOK {
		return domain.ExecutionResult{}, nil
	}
	return domain.ExecutionResult{ExitCode: 1}, errors.New("exit status 1")
}

func newService(goos string, runner *stubRunner) *Service {
	return &Service{
		Probe:   stubProbe{goos: goos, free: 1 << 30},
		Runner:  runner,
		Minimum: domain.RuntimeVersion{Major: 3, Minor: 8},
	}
}

func findCheck(t *testing.T, report domain.ValidationReport, name string) domain.HealthCheck {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not in report %+v", name, report.Checks)
	return domain.HealthCheck{}
}

func TestValidatePassesOnSupportedHost(t *testing.T) {
	runner := &stubRunner{versions: map[string]string{"python3": "Python 3.10.4"}, importOK: true}
	report := newService("linux", runner).Validate(context.Background())

	if !report.OK() {
		t.Fatalf("expected no fatal checks, got %+v", report.Fatal())
	}
	if len(report.Warnings()) != 0 {
		t.Fatalf("expected no warnings, got %+v", report.Warnings())
	}
	if report.Runtime.Path != "/usr/bin/python3" || report.Runtime.Version.Minor != 10 {
		t.Fatalf("unexpected runtime %+v", report.Runtime)
	}
}

func TestValidateMissingRuntimeIsFatal(t *testing.T) {
	report := newService("linux", &stubRunner{}).Validate(context.Background())

	check := findCheck(t, report, "Runtime")
	if check.Status != domain.HealthError {
		t.Fatalf("expected fatal runtime check, got %+v", check)
	}
	if !strings.Contains(check.Fix, "3.8") {
		t.Fatalf("remediation must name the minimum version, got %q", check.Fix)
	}
	if !errors.Is(report.Err(), domain.ErrRuntimeMissing) {
		t.Fatalf("expected ErrRuntimeMissing, got %v", report.Err())
	}
}

func TestValidateOldRuntimeIsFatal(t *testing.T) {
	runner := &stubRunner{versions: map[string]string{"python3": "Python 3.7.9"}, importOK: true}
	report := newService("linux", runner).Validate(context.Background())

	check := findCheck(t, report, "Runtime")
	if check.Status != domain.HealthError || !strings.Contains(check.Details, "3.7") {
		t.Fatalf("expected too-old runtime failure, got %+v", check)
	}
	if !errors.Is(report.Err(), domain.ErrRuntimeTooOld) {
		t.Fatalf("expected ErrRuntimeTooOld, got %v", report.Err())
	}
}

func TestValidatePrefersSatisfyingCandidate(t *testing.T) {
	runner := &stubRunner{versions: map[string]string{"python": "Python 2.7.18", "python3": "Python 3.9.1"}, importOK: true}
	svc := newService("linux", runner)
	svc.Candidates = []string{"python", "python3"}

	report := svc.Validate(context.Background())
	if !report.OK() {
		t.Fatalf("expected python3 to satisfy the requirement, got %+v", report.Fatal())
	}
	if report.Runtime.Command != "python3" {
		t.Fatalf("expected python3 to be selected, got %s", report.Runtime.Command)
	}
}

func TestValidateTerminalLibrary(t *testing.T) {
	tests := []struct {
		name string
		goos string
		want domain.HealthStatus
	}{
		{name: "fatal on known OS", goos: "linux", want: domain.HealthError},
		{name: "warning on unknown OS", goos: "plan9", want: domain.HealthWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{versions: map[string]string{"python3": "Python 3.11.2"}, importOK: false}
			report := newService(tt.goos, runner).Validate(context.Background())
			if got := findCheck(t, report, "Terminal library").Status; got != tt.want {
				t.Fatalf("status = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidateUnknownOSIsWarning(t *testing.T) {
	runner := &stubRunner{versions: map[string]string{"python3": "Python 3.12.0"}, importOK: true}
	report := newService("plan9", runner).Validate(context.Background())

	if !report.OK() {
		t.Fatalf("unknown OS must not be fatal, got %+v", report.Fatal())
	}
	if got := findCheck(t, report, "Operating system").Status; got != domain.HealthWarn {
		t.Fatalf("expected warning, got %s", got)
	}
}

func TestValidateLowDiskSpaceIsWarning(t *testing.T) {
	runner := &stubRunner{versions: map[string]string{"python3": "Python 3.8.0"}, importOK: true}
	svc := newService("linux", runner)
	svc.Probe = stubProbe{goos: "linux", free: 2 * 1024 * 1024}

	report := svc.Validate(context.Background())
	check := findCheck(t, report, "Disk space")
	if check.Status != domain.HealthWarn {
		t.Fatalf("expected disk warning, got %+v", check)
	}
	if !report.OK() {
		t.Fatal("low disk space must not be fatal")
	}
}

func TestValidateDoesNotProbeTerminalWithoutRuntime(t *testing.T) {
	runner := &stubRunner{}
	report := newService("linux", runner).Validate(context.Background())

	for _, c := range report.Checks {
		if c.Name == "Terminal library" {
			t.Fatalf("terminal check must be skipped without a runtime, got %+v", c)
		}
	}
	if len(runner.calls) != 0 {
		t.Fatalf("expected no subprocess calls, got %v", runner.calls)
	}
}
