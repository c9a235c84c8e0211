package domain

import (
	"errors"
	"strings"
)

// HealthStatus indicates validation check outcomes.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck captures a single diagnostic result.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
	// Fix names the remediation step for warn and error checks.
	Fix string
	// Err wraps the matching domain sentinel for error checks.
	Err error
}

// OSFamily is the normalized host operating system.
type OSFamily string

const (
	OSLinux   OSFamily = "linux"
	OSDarwin  OSFamily = "darwin"
	OSWindows OSFamily = "windows"
	OSBSD     OSFamily = "bsd"
	OSUnknown OSFamily = "unknown"
)

// NormalizeOS maps a host identifier such as "Linux" or "freebsd" to a family.
func NormalizeOS(id string) OSFamily {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "linux":
		return OSLinux
	case "darwin", "macos", "osx":
		return OSDarwin
	case "windows":
		return OSWindows
	case "freebsd", "openbsd", "netbsd", "dragonfly":
		return OSBSD
	default:
		return OSUnknown
	}
}

// Known reports whether the family was confidently recognized.
func (f OSFamily) Known() bool {
	return f != OSUnknown && f != ""
}

// SupportsDesktopEntry reports whether freedesktop .desktop files apply.
func (f OSFamily) SupportsDesktopEntry() bool {
	return f == OSLinux || f == OSBSD
}

// ValidationReport aggregates environment checks.
type ValidationReport struct {
	OS      OSFamily
	Runtime RuntimeInfo
	Checks  []HealthCheck
}

// Fatal returns the checks that must abort an install.
func (r ValidationReport) Fatal() []HealthCheck {
	return r.filter(HealthError)
}

// Warnings returns the checks that only downgrade the final state.
func (r ValidationReport) Warnings() []HealthCheck {
	return r.filter(HealthWarn)
}

// Err joins the fatal checks into one error; nil when the report is OK.
func (r ValidationReport) Err() error {
	var errs []error
	for _, check := range r.Fatal() {
		if check.Err != nil {
			errs = append(errs, check.Err)
			continue
		}
		errs = append(errs, errors.New(check.Name+": "+check.Details))
	}
	return errors.Join(errs...)
}

// OK reports whether no fatal check was recorded.
func (r ValidationReport) OK() bool {
	return len(r.Fatal()) == 0
}

func (r ValidationReport) filter(status HealthStatus) []HealthCheck {
	var out []HealthCheck
	for _, check := range r.Checks {
		if check.Status == status {
			out = append(out, check)
		}
	}
	return out
}
