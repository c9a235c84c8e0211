package domain

import (
	"fmt"
	"time"
)

// PayloadSpec builds the payload description from the settings.
func (c *Config) PayloadSpec() Payload {
	return Payload{
		SourceDir:  c.Payload.SourceDir,
		EntryPoint: c.Payload.EntryPoint,
		ModulesDir: c.Payload.ModulesDir,
		Assets:     append([]string(nil), c.Payload.Assets...),
	}
}

// MinimumRuntime parses the configured minimum interpreter version.
func (c *Config) MinimumRuntime() (RuntimeVersion, error) {
	raw := c.Runtime.MinimumVersion
	if raw == "" {
		raw = DefaultMinimumRuntime
	}
	v, err := ParseRuntimeVersion(raw)
	if err != nil {
		return RuntimeVersion{}, fmt.Errorf("invalid minimum_version: %w", err)
	}
	return v, nil
}

// ScopePreference parses the configured scope policy.
func (c *Config) ScopePreference() (ScopePreference, error) {
	return ParseScopePreference(c.Install.Scope)
}

// AliasName returns the alias to register, or "" when aliases are disabled.
func (c *Config) AliasName() string {
	if !c.Shell.Alias {
		return ""
	}
	if c.Shell.AliasName == "" {
		return DefaultAliasName
	}
	return c.Shell.AliasName
}

// VerifyTimeout returns the bounded version-probe timeout.
func (c *Config) VerifyTimeout() time.Duration {
	if c.Verify.TimeoutSeconds <= 0 {
		return DefaultVerifyTimeout
	}
	return time.Duration(c.Verify.TimeoutSeconds) * time.Second
}

// DependencyTimeout returns the dependency-install timeout.
func (c *Config) DependencyTimeout() time.Duration {
	if c.Dependencies.TimeoutSeconds <= 0 {
		return DefaultDependencyTimeout
	}
	return time.Duration(c.Dependencies.TimeoutSeconds) * time.Second
}

// VersionFlag returns the flag passed to the installed command during verification.
func (c *Config) VersionFlag() string {
	if c.Verify.VersionFlag == "" {
		return "--version"
	}
	return c.Verify.VersionFlag
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if _, err := c.MinimumRuntime(); err != nil {
		return err
	}
	if _, err := c.ScopePreference(); err != nil {
		return err
	}
	if c.Editor.TabSize < 0 {
		return fmt.Errorf("editor.tab_size must be >= 0, got %d", c.Editor.TabSize)
	}
	if c.Payload.EntryPoint == "" || c.Payload.ModulesDir == "" {
		return fmt.Errorf("payload.entry_point and payload.modules_dir are required")
	}
	return nil
}
