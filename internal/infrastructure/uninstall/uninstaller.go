package uninstall

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/infrastructure/deploy"
	"github.com/doeshing/axiom-install/internal/pkg/filesystem"
	"github.com/doeshing/axiom-install/internal/ports"
)

// Uninstaller removes the layout of a plan. It derives the paths with the
// same LayoutSource the deployer uses.
type Uninstaller struct {
	layouts  deploy.LayoutSource
	runner   ports.CommandRunner
	profile  ports.ProfileConfigurator
	prompter ports.ConfirmationPrompter
	logger   ports.Logger
}

// NewUninstaller builds an uninstaller. A nil prompter keeps every user directory.
func NewUninstaller(layouts deploy.LayoutSource, runner ports.CommandRunner, profile ports.ProfileConfigurator, prompter ports.ConfirmationPrompter, logger ports.Logger) *Uninstaller {
	return &Uninstaller{layouts: layouts, runner: runner, profile: profile, prompter: prompter, logger: logger}
}

// Uninstall removes application files unconditionally and each user directory
// only after confirmation. Missing paths are recorded, not treated as errors.
func (u *Uninstaller) Uninstall(ctx context.Context, plan domain.InstallationPlan) (domain.UninstallResult, error) {
	layout := u.layouts.Layout(plan)
	var result domain.UninstallResult

	var ops deploy.FileOps = deploy.DirectOps{}
	if plan.RequiresElevation {
		sudo, err := deploy.NewSudoOps(u.runner)
		if err != nil {
			return result, err
		}
		ops = sudo
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("%w: %v", domain.ErrInterrupted, err)
	}

	appPaths := []string{layout.BinaryPath, layout.LauncherPath, layout.LibDir}
	if layout.DesktopFile != "" {
		appPaths = append(appPaths, layout.DesktopFile)
	}
	for _, path := range appPaths {
		if err := u.remove(ctx, ops, path, &result); err != nil {
			return result, err
		}
	}

	for _, dir := range layout.UserDirs {
		if !filesystem.Exists(dir) {
			result.Missing = append(result.Missing, dir)
			continue
		}
		ok, err := u.confirm(fmt.Sprintf("Remove %s and everything in it?", dir))
		if err != nil {
			return result, err
		}
		if !ok {
			result.Kept = append(result.Kept, dir)
			result.Declined = true
			continue
		}
		if err := u.remove(ctx, ops, dir, &result); err != nil {
			return result, err
		}
	}

	if err := u.removeDataDirIfEmpty(ctx, ops, layout.DataDir, &result); err != nil {
		return result, err
	}

	if u.profile != nil {
		removal, err := u.profile.Remove(plan)
		if err != nil {
			return result, fmt.Errorf("clean shell profile: %w", err)
		}
		result.Profile = removal
	}

	if u.logger != nil {
		u.logger.Debug("uninstall finished", map[string]interface{}{
			"removed":  len(result.Removed),
			"kept":     len(result.Kept),
			"missing":  len(result.Missing),
			"declined": result.Declined,
		})
	}
	return result, nil
}

func (u *Uninstaller) remove(ctx context.Context, ops deploy.FileOps, path string, result *domain.UninstallResult) error {
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Missing = append(result.Missing, path)
			return nil
		}
		return err
	}
	if err := ops.RemoveAll(ctx, path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	result.Removed = append(result.Removed, path)
	return nil
}

func (u *Uninstaller) removeDataDirIfEmpty(ctx context.Context, ops deploy.FileOps, dir string, result *domain.UninstallResult) error {
	if !filesystem.Exists(dir) {
		result.Missing = append(result.Missing, dir)
		return nil
	}
	empty, err := filesystem.IsDirEmpty(dir)
	if err != nil {
		return err
	}
	if !empty {
		result.Kept = append(result.Kept, dir)
		return nil
	}
	return u.remove(ctx, ops, dir, result)
}

func (u *Uninstaller) confirm(question string) (bool, error) {
	if u.prompter == nil {
		return false, nil
	}
	return u.prompter.Confirm(question)
}

var _ ports.Uninstaller = (*Uninstaller)(nil)
