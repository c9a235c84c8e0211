package domain

import (
	"path/filepath"
	"runtime"
)

// UserDataDirs are the per-app subdirectories users are expected to edit.
var UserDataDirs = []string{"config", "themes", "plugins", "backups"}

// DeployedLayout enumerates every path an install creates.
type DeployedLayout struct {
	BinaryPath   string
	DataDir      string
	LibDir       string
	LauncherPath string
	ConfigFile   string
	DesktopFile  string
	UserDirs     []string
}

// LayoutFor derives the layout of plan. Deployer and Uninstaller both call it,
// so removal never targets a path install did not create. desktopDir is empty
// when desktop integration does not apply to the host.
func LayoutFor(plan InstallationPlan, desktopDir string) DeployedLayout {
	layout := DeployedLayout{
		BinaryPath:   plan.BinaryPath(),
		DataDir:      plan.DataDir,
		LibDir:       filepath.Join(plan.DataDir, LibDirName),
		LauncherPath: filepath.Join(plan.DataDir, launcherName()),
		ConfigFile:   filepath.Join(plan.DataDir, "config", ConfigFileName),
	}
	if desktopDir != "" {
		layout.DesktopFile = filepath.Join(desktopDir, DesktopFileName)
	}
	for _, dir := range UserDataDirs {
		layout.UserDirs = append(layout.UserDirs, filepath.Join(plan.DataDir, dir))
	}
	return layout
}

// Paths lists the created paths, files first and directories last.
func (l DeployedLayout) Paths() []string {
	paths := []string{l.BinaryPath, l.LauncherPath, l.LibDir}
	if l.DesktopFile != "" {
		paths = append(paths, l.DesktopFile)
	}
	if l.ConfigFile != "" {
		paths = append(paths, l.ConfigFile)
	}
	paths = append(paths, l.UserDirs...)
	return append(paths, l.DataDir)
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return AppName + ".cmd"
	}
	return AppName
}

func launcherName() string {
	return binaryName()
}
