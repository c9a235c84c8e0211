package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/pkg/logger"
)

type stubProbe struct {
	goos     string
	elevated bool
	writable map[string]bool
	home     string
}

func (p stubProbe) GOOS() string                     { return p.goos }
func (p stubProbe) IsElevated() bool                 { return p.elevated }
func (p stubProbe) CanWrite(dir string) bool         { return p.writable[dir] }
func (p stubProbe) FreeSpace(string) (uint64, error) { return 1 << 30, nil }
func (p stubProbe) Getenv(string) string             { return "" }
func (p stubProbe) HomeDir() (string, error) {
	if p.home == "" {
		return "", domain.ErrHomeUnavailable
	}
	return p.home, nil
}

func TestResolveUnprivilegedUserGetsUserScope(t *testing.T) {
	home := t.TempDir()
	r := NewResolver(stubProbe{goos: "linux", home: home}, Options{}, logger.NewStd(false))

	plan, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	want := domain.InstallationPlan{
		Scope:   domain.ScopeUser,
		BinDir:  filepath.Join(home, ".local", "bin"),
		DataDir: filepath.Join(home, ".local", "share", "axiom"),
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
	for _, dir := range []string{plan.BinDir, plan.DataDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected %s to be created", dir)
		}
	}
}

func TestResolveSystemScope(t *testing.T) {
	prefix := t.TempDir()
	systemBin := filepath.Join(prefix, "bin")

	tests := []struct {
		name          string
		probe         stubProbe
		pref          domain.ScopePreference
		wantScope     domain.Scope
		wantElevation bool
	}{
		{
			name:      "elevated identity selects system scope",
			probe:     stubProbe{elevated: true, writable: map[string]bool{systemBin: true}},
			wantScope: domain.ScopeSystem,
		},
		{
			name:      "elevated identity without a system bin needs no elevation",
			probe:     stubProbe{elevated: true},
			wantScope: domain.ScopeSystem,
		},
		{
			name:      "writable system bin selects system scope",
			probe:     stubProbe{writable: map[string]bool{systemBin: true}},
			wantScope: domain.ScopeSystem,
		},
		{
			name:          "forced system scope without write access needs elevation",
			probe:         stubProbe{home: t.TempDir()},
			pref:          domain.ScopeForceSystem,
			wantScope:     domain.ScopeSystem,
			wantElevation: true,
		},
		{
			name:      "forced user scope ignores writable system bin",
			probe:     stubProbe{writable: map[string]bool{systemBin: true}, home: t.TempDir()},
			pref:      domain.ScopeForceUser,
			wantScope: domain.ScopeUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.probe, Options{SystemPrefix: prefix, Preference: tt.pref}, nil)
			plan, err := r.Resolve()
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if plan.Scope != tt.wantScope {
				t.Fatalf("scope = %s, want %s", plan.Scope, tt.wantScope)
			}
			if plan.RequiresElevation != tt.wantElevation {
				t.Fatalf("RequiresElevation = %v, want %v", plan.RequiresElevation, tt.wantElevation)
			}
			if plan.Scope == domain.ScopeSystem && plan.BinDir != systemBin {
				t.Fatalf("expected bin dir %s, got %s", systemBin, plan.BinDir)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	home := t.TempDir()
	r := NewResolver(stubProbe{goos: "linux", home: home}, Options{}, nil)

	first, err := r.Resolve()
	if err != nil {
		t.Fatalf("first Resolve error: %v", err)
	}
	second, err := r.Resolve()
	if err != nil {
		t.Fatalf("second Resolve error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("plans differ between runs (-first +second):\n%s", diff)
	}
}

func TestResolveWithoutHomeFails(t *testing.T) {
	r := NewResolver(stubProbe{goos: "linux"}, Options{SystemPrefix: t.TempDir()}, nil)
	_, err := r.Resolve()
	if !errors.Is(err, domain.ErrHomeUnavailable) {
		t.Fatalf("expected ErrHomeUnavailable, got %v", err)
	}
}

func TestLayoutDesktopEntryDependsOnOSFamily(t *testing.T) {
	home := t.TempDir()
	plan := domain.InstallationPlan{Scope: domain.ScopeUser, BinDir: "b", DataDir: "d"}

	linux := NewResolver(stubProbe{goos: "linux", home: home}, Options{DesktopEntry: true}, nil)
	if got := linux.Layout(plan).DesktopFile; got != filepath.Join(home, ".local", "share", "applications", "axiom.desktop") {
		t.Fatalf("unexpected desktop file %q", got)
	}

	unknown := NewResolver(stubProbe{goos: "plan9", home: home}, Options{DesktopEntry: true}, nil)
	if got := unknown.Layout(plan).DesktopFile; got != "" {
		t.Fatalf("expected no desktop file on unknown OS, got %q", got)
	}

	disabled := NewResolver(stubProbe{goos: "linux", home: home}, Options{DesktopEntry: false}, nil)
	if got := disabled.Layout(plan).DesktopFile; got != "" {
		t.Fatalf("expected no desktop file when disabled, got %q", got)
	}
}
