// Package deploy stages the payload in a temporary workspace and commits it
// into the directories of an installation plan.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/infrastructure/appconfig"
	"github.com/doeshing/axiom-install/internal/pkg/filesystem"
	"github.com/doeshing/axiom-install/internal/ports"
)

// LayoutSource derives the deployed layout of a plan.
type LayoutSource interface {
	Layout(plan domain.InstallationPlan) domain.DeployedLayout
}

// Options tunes a Deployer.
type Options struct {
	GOOS            string
	VerifyChecksums bool
	DesktopEntry    bool
	Editor          domain.EditorDefaults
	// TempDir is where the staging workspace is created; empty means os.TempDir.
	TempDir string
}

// Deployer implements ports.Deployer.
type Deployer struct {
	layouts LayoutSource
	runner  ports.CommandRunner
	opts    Options
	logger  ports.Logger
	// ops overrides the plan's FileOps when set.
	ops FileOps
}

// NewDeployer builds a deployer.
func NewDeployer(layouts LayoutSource, runner ports.CommandRunner, opts Options, logger ports.Logger) *Deployer {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	return &Deployer{layouts: layouts, runner: runner, opts: opts, logger: logger}
}

type stagedTree struct {
	root     string
	lib      string
	launcher string
	config   string
	desktop  string
}

// Deploy validates the payload, stages it and commits it. Nothing under the
// plan's directories changes before the payload is validated and fully staged.
func (d *Deployer) Deploy(ctx context.Context, plan domain.InstallationPlan, payload domain.Payload) (domain.DeployResult, error) {
	layout := d.layouts.Layout(plan)
	result := domain.DeployResult{Layout: layout}

	if err := checkPayload(payload); err != nil {
		return result, err
	}
	if d.opts.VerifyChecksums {
		verified, err := verifyChecksums(payload)
		if err != nil {
			return result, err
		}
		d.debug("payload checksums", map[string]interface{}{"manifest": verified})
	}
	if payload.Interpreter == "" {
		payload.Interpreter = "python3"
	}

	ops, err := d.fileOps(plan)
	if err != nil {
		return result, err
	}

	workspace, err := os.MkdirTemp(d.opts.TempDir, "axiom-install-")
	if err != nil {
		return result, fmt.Errorf("create staging workspace: %w", err)
	}
	defer os.RemoveAll(workspace)

	staged, err := d.stage(workspace, layout, payload)
	if err != nil {
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("%w: %v", domain.ErrInterrupted, err)
	}

	if err := d.commit(ctx, ops, plan, layout, staged); err != nil {
		return result, err
	}

	if d.opts.DesktopEntry && layout.DesktopFile == "" && !domain.NormalizeOS(d.opts.GOOS).Known() {
		result.Warnings = append(result.Warnings, "desktop integration skipped on unrecognized host")
	}
	d.debug("payload deployed", map[string]interface{}{
		"data":     layout.DataDir,
		"binary":   layout.BinaryPath,
		"elevated": plan.RequiresElevation,
	})
	return result, nil
}

func checkPayload(payload domain.Payload) error {
	entry, err := os.Stat(payload.EntryPointPath())
	if err != nil || !entry.Mode().IsRegular() {
		return fmt.Errorf("%w: entry point %s not found", domain.ErrPayloadMissing, payload.EntryPointPath())
	}
	modules, err := os.Stat(payload.ModulesPath())
	if err != nil || !modules.IsDir() {
		return fmt.Errorf("%w: module directory %s not found", domain.ErrPayloadMissing, payload.ModulesPath())
	}
	return nil
}

func (d *Deployer) fileOps(plan domain.InstallationPlan) (FileOps, error) {
	if d.ops != nil {
		return d.ops, nil
	}
	if !plan.RequiresElevation {
		return DirectOps{}, nil
	}
	return NewSudoOps(d.runner)
}

func (d *Deployer) stage(workspace string, layout domain.DeployedLayout, payload domain.Payload) (stagedTree, error) {
	staged := stagedTree{
		root:     workspace,
		lib:      filepath.Join(workspace, domain.LibDirName),
		launcher: filepath.Join(workspace, filepath.Base(layout.LauncherPath)),
	}

	entry := filepath.Join(staged.lib, payload.EntryPoint)
	if err := filesystem.CopyFile(payload.EntryPointPath(), entry, domain.ExecutablePermissions); err != nil {
		return staged, fmt.Errorf("stage entry point: %w", err)
	}
	if err := filesystem.CopyTree(payload.ModulesPath(), filepath.Join(staged.lib, payload.ModulesDir)); err != nil {
		return staged, fmt.Errorf("stage modules: %w", err)
	}
	for _, asset := range payload.Assets {
		if err := stageAsset(payload.SourceDir, staged.lib, asset); err != nil {
			return staged, err
		}
	}

	data := newTemplateData(layout, payload)
	launcher, err := renderLauncher(d.opts.GOOS, data)
	if err != nil {
		return staged, err
	}
	if err := writeStaged(staged.launcher, launcher, domain.ExecutablePermissions); err != nil {
		return staged, err
	}

	if !filesystem.Exists(layout.ConfigFile) {
		raw, err := appconfig.Render(d.opts.Editor)
		if err != nil {
			return staged, err
		}
		staged.config = filepath.Join(workspace, domain.ConfigFileName)
		if err := writeStaged(staged.config, raw, domain.FilePermissions); err != nil {
			return staged, err
		}
	}

	if layout.DesktopFile != "" {
		raw, err := renderDesktopEntry(data)
		if err != nil {
			return staged, err
		}
		staged.desktop = filepath.Join(workspace, domain.DesktopFileName)
		if err := writeStaged(staged.desktop, raw, domain.FilePermissions); err != nil {
			return staged, err
		}
	}
	return staged, nil
}

func stageAsset(sourceDir, lib, asset string) error {
	src := filepath.Join(sourceDir, asset)
	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stage asset %s: %w", asset, err)
	}
	dst := filepath.Join(lib, asset)
	if info.IsDir() {
		err = filesystem.CopyTree(src, dst)
	} else {
		err = filesystem.CopyFile(src, dst, info.Mode().Perm())
	}
	if err != nil {
		return fmt.Errorf("stage asset %s: %w", asset, err)
	}
	return nil
}

func writeStaged(path string, raw []byte, mode fs.FileMode) error {
	if err := os.WriteFile(path, raw, mode); err != nil {
		return err
	}
	// WriteFile honours the umask.
	return os.Chmod(path, mode)
}

// commit replaces lib and the launcher. User directories and an existing
// config file are left in place.
func (d *Deployer) commit(ctx context.Context, ops FileOps, plan domain.InstallationPlan, layout domain.DeployedLayout, staged stagedTree) error {
	for _, dir := range []string{layout.DataDir, plan.BinDir} {
		if err := ops.MkdirAll(ctx, dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := replaceTree(ctx, ops, staged.lib, layout.LibDir); err != nil {
		return fmt.Errorf("install %s: %w", layout.LibDir, err)
	}
	if err := ops.CopyFile(ctx, staged.launcher, layout.LauncherPath, domain.ExecutablePermissions); err != nil {
		return fmt.Errorf("install launcher: %w", err)
	}

	for _, dir := range layout.UserDirs {
		if err := ops.MkdirAll(ctx, dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if staged.config != "" {
		if err := ops.CopyFile(ctx, staged.config, layout.ConfigFile, domain.FilePermissions); err != nil {
			return fmt.Errorf("write %s: %w", layout.ConfigFile, err)
		}
	}

	if d.opts.GOOS == "windows" {
		if err := ops.CopyFile(ctx, staged.launcher, layout.BinaryPath, domain.ExecutablePermissions); err != nil {
			return fmt.Errorf("install %s: %w", layout.BinaryPath, err)
		}
	} else if err := ops.Symlink(ctx, layout.LauncherPath, layout.BinaryPath); err != nil {
		return fmt.Errorf("link %s: %w", layout.BinaryPath, err)
	}

	if staged.desktop != "" {
		if err := ops.MkdirAll(ctx, filepath.Dir(layout.DesktopFile)); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(layout.DesktopFile), err)
		}
		if err := ops.CopyFile(ctx, staged.desktop, layout.DesktopFile, domain.FilePermissions); err != nil {
			return fmt.Errorf("write desktop entry: %w", err)
		}
	}
	return nil
}

// replaceTree copies src next to dst and renames it into place. dst keeps its
// previous contents until the copy is complete.
func replaceTree(ctx context.Context, ops FileOps, src, dst string) error {
	fresh, old := dst+".new", dst+".old"
	for _, path := range []string{fresh, old} {
		if err := ops.RemoveAll(ctx, path); err != nil {
			return err
		}
	}
	if err := ops.MergeTree(ctx, src, fresh); err != nil {
		_ = ops.RemoveAll(ctx, fresh)
		return err
	}
	previous := filesystem.Exists(dst)
	if previous {
		if err := ops.Rename(ctx, dst, old); err != nil {
			_ = ops.RemoveAll(ctx, fresh)
			return err
		}
	}
	if err := ops.Rename(ctx, fresh, dst); err != nil {
		if previous {
			_ = ops.Rename(ctx, old, dst)
		}
		_ = ops.RemoveAll(ctx, fresh)
		return err
	}
	if previous {
		return ops.RemoveAll(ctx, old)
	}
	return nil
}

func (d *Deployer) debug(msg string, fields map[string]interface{}) {
	if d.logger != nil {
		d.logger.Debug(msg, fields)
	}
}

var _ ports.Deployer = (*Deployer)(nil)
