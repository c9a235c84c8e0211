package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/ports"
)

// Resolver derives the installation plan from host state only.
type Resolver struct {
	probe      ports.HostProbe
	prefix     string
	preference domain.ScopePreference
	desktop    bool
	logger     ports.Logger
}

// Options configures a Resolver.
type Options struct {
	SystemPrefix string
	Preference   domain.ScopePreference
	DesktopEntry bool
}

// NewResolver builds a resolver; an empty prefix means /usr/local.
func NewResolver(probe ports.HostProbe, opts Options, logger ports.Logger) *Resolver {
	prefix := opts.SystemPrefix
	if prefix == "" {
		prefix = domain.DefaultSystemPrefix
	}
	pref := opts.Preference
	if pref == "" {
		pref = domain.ScopeAuto
	}
	return &Resolver{probe: probe, prefix: prefix, preference: pref, desktop: opts.DesktopEntry, logger: logger}
}

// SystemBinDir is the canonical system binary directory.
func (r *Resolver) SystemBinDir() string {
	return filepath.Join(r.prefix, "bin")
}

// Resolve implements ports.PathResolver. For user scope it creates the
// user-local directories; re-creating existing ones is not an error.
func (r *Resolver) Resolve() (domain.InstallationPlan, error) {
	systemBin := r.SystemBinDir()
	elevated := r.probe.IsElevated()
	writable := elevated || r.probe.CanWrite(systemBin)

	scope := domain.ScopeUser
	switch r.preference {
	case domain.ScopeForceSystem:
		scope = domain.ScopeSystem
	case domain.ScopeForceUser:
		scope = domain.ScopeUser
	default:
		if writable {
			scope = domain.ScopeSystem
		}
	}

	var plan domain.InstallationPlan
	if scope == domain.ScopeSystem {
		plan = domain.InstallationPlan{
			Scope:             domain.ScopeSystem,
			BinDir:            systemBin,
			DataDir:           filepath.Join(r.prefix, "share", domain.AppName),
			RequiresElevation: !writable,
		}
	} else {
		home, err := r.probe.HomeDir()
		if err != nil {
			return domain.InstallationPlan{}, fmt.Errorf("resolve user scope: %w", err)
		}
		plan = domain.InstallationPlan{
			Scope:   domain.ScopeUser,
			BinDir:  filepath.Join(home, ".local", "bin"),
			DataDir: filepath.Join(home, ".local", "share", domain.AppName),
		}
		for _, dir := range []string{plan.BinDir, plan.DataDir} {
			if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
				return domain.InstallationPlan{}, fmt.Errorf("create %s: %w", dir, err)
			}
		}
	}

	if r.logger != nil {
		r.logger.Debug("plan resolved", map[string]interface{}{
			"scope":     plan.Scope,
			"bin":       plan.BinDir,
			"data":      plan.DataDir,
			"elevated":  elevated,
			"writable":  writable,
			"elevation": plan.RequiresElevation,
		})
	}
	return plan, nil
}

// Layout implements ports.PathResolver.
func (r *Resolver) Layout(plan domain.InstallationPlan) domain.DeployedLayout {
	return domain.LayoutFor(plan, r.desktopDir(plan))
}

// desktopDir returns "" when desktop integration does not apply.
func (r *Resolver) desktopDir(plan domain.InstallationPlan) string {
	if !r.desktop || !domain.NormalizeOS(r.probe.GOOS()).SupportsDesktopEntry() {
		return ""
	}
	if plan.Scope == domain.ScopeSystem {
		return filepath.Join(r.prefix, "share", "applications")
	}
	home, err := r.probe.HomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "applications")
}

var _ ports.PathResolver = (*Resolver)(nil)
