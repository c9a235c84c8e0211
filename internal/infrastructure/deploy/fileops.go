package deploy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/pkg/filesystem"
	"github.com/doeshing/axiom-install/internal/ports"
)

// FileOps performs the mutations of the commit step. Every operation
// replaces its target; MergeTree keeps files that are absent from src.
type FileOps interface {
	MkdirAll(ctx context.Context, dir string) error
	RemoveAll(ctx context.Context, path string) error
	MergeTree(ctx context.Context, src, dst string) error
	CopyFile(ctx context.Context, src, dst string, mode fs.FileMode) error
	Symlink(ctx context.Context, target, link string) error
	Rename(ctx context.Context, src, dst string) error
}

// DirectOps mutates the filesystem as the invoking user.
type DirectOps struct{}

func (DirectOps) MkdirAll(_ context.Context, dir string) error {
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func (DirectOps) RemoveAll(_ context.Context, path string) error {
	_, err := filesystem.RemoveIfExists(path)
	return err
}

func (DirectOps) MergeTree(_ context.Context, src, dst string) error {
	return filesystem.CopyTree(src, dst)
}

func (DirectOps) CopyFile(_ context.Context, src, dst string, mode fs.FileMode) error {
	return filesystem.CopyFile(src, dst, mode)
}

// Symlink has ln -sfn semantics: an existing file or link at link is replaced,
// an existing directory is an error.
func (DirectOps) Symlink(_ context.Context, target, link string) error {
	if info, err := os.Lstat(link); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", link)
		}
		if err := os.Remove(link); err != nil {
			return err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Symlink(target, link)
}

func (DirectOps) Rename(_ context.Context, src, dst string) error {
	return os.Rename(src, dst)
}

// SudoOps runs each mutation through sudo for system installs without write access.
type SudoOps struct {
	runner ports.CommandRunner
	sudo   string
}

// NewSudoOps locates sudo; a missing binary is domain.ErrElevationUnavailable.
func NewSudoOps(runner ports.CommandRunner) (*SudoOps, error) {
	path, err := runner.LookPath("sudo")
	if err != nil {
		return nil, fmt.Errorf("%w: sudo not found on PATH", domain.ErrElevationUnavailable)
	}
	return &SudoOps{runner: runner, sudo: path}, nil
}

func (s *SudoOps) MkdirAll(ctx context.Context, dir string) error {
	return s.run(ctx, "mkdir", "-p", "-m", "755", dir)
}

func (s *SudoOps) RemoveAll(ctx context.Context, path string) error {
	return s.run(ctx, "rm", "-rf", path)
}

func (s *SudoOps) MergeTree(ctx context.Context, src, dst string) error {
	if err := s.MkdirAll(ctx, dst); err != nil {
		return err
	}
	return s.run(ctx, "cp", "-R", src+string(filepath.Separator)+".", dst)
}

func (s *SudoOps) CopyFile(ctx context.Context, src, dst string, mode fs.FileMode) error {
	if err := s.run(ctx, "cp", src, dst); err != nil {
		return err
	}
	return s.run(ctx, "chmod", fmt.Sprintf("%o", mode.Perm()), dst)
}

func (s *SudoOps) Symlink(ctx context.Context, target, link string) error {
	return s.run(ctx, "ln", "-sfn", target, link)
}

func (s *SudoOps) Rename(ctx context.Context, src, dst string) error {
	return s.run(ctx, "mv", src, dst)
}

func (s *SudoOps) run(ctx context.Context, args ...string) error {
	// sudo reads a password from the controlling terminal, not stdin.
	full := append([]string{"--"}, args...)
	result, err := s.runner.Run(ctx, s.sudo, full...)
	if err != nil {
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Errorf("sudo %s: %s", strings.Join(args, " "), detail)
	}
	return nil
}

var (
	_ FileOps = DirectOps{}
	_ FileOps = (*SudoOps)(nil)
)
