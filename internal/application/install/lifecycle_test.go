package install

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/infrastructure/deploy"
	"github.com/doeshing/axiom-install/internal/infrastructure/executor"
	"github.com/doeshing/axiom-install/internal/infrastructure/paths"
	"github.com/doeshing/axiom-install/internal/infrastructure/shell"
	"github.com/doeshing/axiom-install/internal/infrastructure/uninstall"
	"github.com/doeshing/axiom-install/internal/infrastructure/verify"
)

type hostProbe struct {
	home  string
	shell string
}

func (p hostProbe) GOOS() string                     { return runtime.GOOS }
func (p hostProbe) IsElevated() bool                 { return false }
func (p hostProbe) CanWrite(string) bool             { return false }
func (p hostProbe) HomeDir() (string, error)         { return p.home, nil }
func (p hostProbe) FreeSpace(string) (uint64, error) { return 1 << 30, nil }

func (p hostProbe) Getenv(key string) string {
	if key == "SHELL" {
		return p.shell
	}
	return ""
}

type yes struct{}

func (yes) Enabled() bool                { return true }
func (yes) Confirm(string) (bool, error) { return true, nil }

func TestInstallAndUninstallLifecycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX launcher")
	}
	root := t.TempDir()
	home := filepath.Join(root, "home")
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "editor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "axiom.py"), []byte("echo \"Axiom $1\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "editor", "__init__.py"), []byte("\n"), 0o644))

	// An unrecognized shell falls back to ~/.profile and downgrades the run.
	probe := hostProbe{home: home, shell: "/usr/bin/elvish"}
	runner := executor.NewLocalRunner()
	resolver := paths.NewResolver(probe, paths.Options{SystemPrefix: filepath.Join(root, "usr")}, nil)
	profile := shell.NewConfigurator(probe, "ax", nil)
	logger := &recordingLogger{}

	o := &Orchestrator{
		Validator: stubValidator{report: domain.ValidationReport{
			OS:      domain.NormalizeOS(runtime.GOOS),
			Runtime: domain.RuntimeInfo{Command: "sh", Path: "/bin/sh", Found: true},
		}},
		Resolver:    resolver,
		Deployer:    deploy.NewDeployer(resolver, runner, deploy.Options{TempDir: t.TempDir()}, nil),
		Profile:     profile,
		Verifier:    verify.NewVerifier(runner, "", 0, nil),
		Uninstaller: uninstall.NewUninstaller(resolver, runner, profile, yes{}, nil),
		Probe:       probe,
		Logger:      logger,
	}

	payload := domain.Payload{SourceDir: src, EntryPoint: "axiom.py", ModulesDir: "editor"}
	outcome := o.Install(context.Background(), Options{Payload: payload})
	require.NoError(t, outcome.Err)
	assert.Equal(t, domain.StateCompleteWithWarnings, outcome.State)
	assert.Equal(t, domain.ExitWarnings, outcome.ExitCode())
	assert.True(t, outcome.Verification.OK(), outcome.Verification.Details)
	assert.True(t, outcome.Profile.Fallback)

	rc, err := os.ReadFile(filepath.Join(home, ".profile"))
	require.NoError(t, err)
	assert.Contains(t, string(rc), filepath.Join(home, ".local", "bin"))

	again := o.Install(context.Background(), Options{Payload: payload})
	require.NoError(t, again.Err)
	rcAgain, err := os.ReadFile(filepath.Join(home, ".profile"))
	require.NoError(t, err)
	assert.Equal(t, string(rc), string(rcAgain), "re-install must not touch the profile")

	removed := o.Uninstall(context.Background())
	require.NoError(t, removed.Err)
	assert.Equal(t, domain.StateComplete, removed.State)
	for _, path := range outcome.Layout.Paths() {
		_, statErr := os.Lstat(path)
		assert.True(t, os.IsNotExist(statErr), "%s should be removed", path)
	}
	rcAfter, err := os.ReadFile(filepath.Join(home, ".profile"))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(rcAfter), domain.ProfileMarker))
}
