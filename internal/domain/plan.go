package domain

import (
	"fmt"
	"path/filepath"
)

// Scope selects where the payload is installed.
type Scope string

const (
	ScopeSystem Scope = "system"
	ScopeUser   Scope = "user"
)

// ScopePreference is the configured scope policy; ScopeAuto applies the privilege rule.
type ScopePreference string

const (
	ScopeAuto        ScopePreference = "auto"
	ScopeForceSystem ScopePreference = "system"
	ScopeForceUser   ScopePreference = "user"
)

// ParseScopePreference validates a --scope flag or settings value.
func ParseScopePreference(value string) (ScopePreference, error) {
	switch ScopePreference(value) {
	case "", ScopeAuto:
		return ScopeAuto, nil
	case ScopeForceSystem, ScopeForceUser:
		return ScopePreference(value), nil
	default:
		return "", fmt.Errorf("invalid scope %q (supported: auto, system, user)", value)
	}
}

// InstallationPlan is resolved once per run and passed by value afterwards.
// RequiresElevation is true only for system scope without write access to BinDir.
type InstallationPlan struct {
	Scope             Scope
	BinDir            string
	DataDir           string
	RequiresElevation bool
}

// BinaryPath is the stable command path inside BinDir.
func (p InstallationPlan) BinaryPath() string {
	return filepath.Join(p.BinDir, binaryName())
}

// OnSearchPath reports whether BinDir is already an entry of pathEnv.
func (p InstallationPlan) OnSearchPath(pathEnv string) bool {
	if pathEnv == "" || p.BinDir == "" {
		return false
	}
	target := filepath.Clean(p.BinDir)
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry == "" {
			continue
		}
		if filepath.Clean(entry) == target {
			return true
		}
	}
	return false
}
