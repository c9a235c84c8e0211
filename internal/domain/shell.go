package domain

// ShellName enumerates shells with a known startup file.
type ShellName string

const (
	ShellUnknown ShellName = "unknown"
	ShellZsh     ShellName = "zsh"
	ShellBash    ShellName = "bash"
	ShellFish    ShellName = "fish"
	ShellKsh     ShellName = "ksh"
)

// ShellProfileEdit is the block appended to one startup file.
type ShellProfileEdit struct {
	RCFile     string
	Marker     string
	ExportLine string
	// AliasLine is empty when no alias is registered.
	AliasLine string
}

// ConfigResult describes what the configurator did to the startup file.
type ConfigResult struct {
	Shell ShellName
	Edit  ShellProfileEdit
	// Fallback is true when the shell was unknown and the generic profile was used.
	Fallback          bool
	Skipped           bool
	AlreadyConfigured bool
	PathAdded         bool
	AliasAdded        bool
}

// ProfileRemoval describes an uninstall-time edit of a startup file.
type ProfileRemoval struct {
	RCFile     string
	BackupFile string
	Removed    bool
}
