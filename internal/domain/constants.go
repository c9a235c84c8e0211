package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// ExecutablePermissions is applied to the entry point and launcher (rwxr-xr-x)
	ExecutablePermissions = 0o755
	// FilePermissions is used for generated, world-readable files (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for installer state files (rw-------)
	SecureFilePermissions = 0o600
)

// Application identity constants
const (
	// AppName is the installed command name.
	AppName = "axiom"
	// DisplayName is used in desktop entries and user-facing messages.
	DisplayName = "Axiom Text Editor"
	// DefaultAliasName is the short alias registered in shell profiles.
	DefaultAliasName = "ax"
	// ProfileMarker tags the block appended to shell startup files.
	ProfileMarker = "# Added by axiom installer"
)

// Payload layout constants
const (
	DefaultEntryPoint   = "axiom.py"
	DefaultModulesDir   = "editor"
	ChecksumFile        = "SHA256SUMS"
	LibDirName          = "lib"
	ConfigFileName      = "config.toml"
	DesktopFileName     = "axiom.desktop"
	DefaultSystemPrefix = "/usr/local"
)

// Runtime requirement constants
const (
	// DefaultMinimumRuntime is the lowest interpreter version the payload runs on.
	DefaultMinimumRuntime = "3.8"
	// DefaultTerminalModule must be importable by the interpreter.
	DefaultTerminalModule = "curses"
)

// Timeout and threshold constants
const (
	// DefaultProbeTimeout bounds every interpreter probe during validation
	DefaultProbeTimeout = 5 * time.Second
	// DefaultVerifyTimeout bounds the post-install version probe
	DefaultVerifyTimeout = 10 * time.Second
	// DefaultDependencyTimeout bounds the optional dependency install subprocess
	DefaultDependencyTimeout = 5 * time.Minute
	// MinFreeSpaceBytes is the free-space threshold below which validation warns
	MinFreeSpaceBytes = 10 * 1024 * 1024
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// BackupTimestampFormat suffixes shell profile backups
	BackupTimestampFormat = "20060102-150405"
)
