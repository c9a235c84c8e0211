package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/infrastructure/appconfig"
)

type lookPathRunner struct {
	path string
	err  error
}

func (r lookPathRunner) Run(context.Context, string, ...string) (domain.ExecutionResult, error) {
	return domain.ExecutionResult{}, nil
}

func (r lookPathRunner) LookPath(string) (string, error) { return r.path, r.err }

func TestPayloadCheck(t *testing.T) {
	dir := t.TempDir()
	payload := domain.Payload{SourceDir: dir, EntryPoint: "axiom.py", ModulesDir: "editor"}

	check := payloadCheck(payload)
	assert.Equal(t, domain.HealthError, check.Status)
	assert.True(t, errors.Is(check.Err, domain.ErrPayloadMissing))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "axiom.py"), []byte("print()\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "editor"), 0o755))
	check = payloadCheck(payload)
	assert.Equal(t, domain.HealthOK, check.Status)
	assert.Equal(t, dir, check.Details)
}

func TestEditorConfigCheck(t *testing.T) {
	dir := t.TempDir()

	_, ok := editorConfigCheck(filepath.Join(dir, "missing.toml"))
	assert.False(t, ok)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[editor\ntab_size = "), 0o644))
	check, ok := editorConfigCheck(broken)
	require.True(t, ok)
	assert.Equal(t, domain.HealthWarn, check.Status)
	assert.NotEmpty(t, check.Fix)

	raw, err := appconfig.Render(domain.EditorDefaults{TabSize: 2, Theme: "dark"})
	require.NoError(t, err)
	valid := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(valid, raw, 0o644))
	check, ok = editorConfigCheck(valid)
	require.True(t, ok)
	assert.Equal(t, domain.HealthOK, check.Status)
	assert.Contains(t, check.Details, "tab size 2, theme dark")
}

func TestInstalledChecks(t *testing.T) {
	t.Run("not installed", func(t *testing.T) {
		checks := installedChecks(lookPathRunner{err: errors.New("not found")})
		require.Len(t, checks, 1)
		assert.Equal(t, domain.HealthWarn, checks[0].Status)
	})

	t.Run("follows the launcher link to config.toml", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinked launcher is unix-only")
		}
		dataDir := t.TempDir()
		binDir := t.TempDir()
		launcher := filepath.Join(dataDir, domain.AppName)
		require.NoError(t, os.WriteFile(launcher, []byte("#!/bin/sh\n"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "config"), 0o755))
		raw, err := appconfig.Render(domain.EditorDefaults{})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config", domain.ConfigFileName), raw, 0o644))
		binary := filepath.Join(binDir, domain.AppName)
		require.NoError(t, os.Symlink(launcher, binary))

		checks := installedChecks(lookPathRunner{path: binary})
		require.Len(t, checks, 2)
		assert.Equal(t, "Installed command", checks[0].Name)
		assert.Equal(t, "Editor config", checks[1].Name)
		assert.Equal(t, domain.HealthOK, checks[1].Status)
	})
}
