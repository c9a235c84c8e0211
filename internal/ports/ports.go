// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the installer core and external
// adapters (infrastructure). The orchestrator in application/install depends only
// on these interfaces, so every stage can be replaced by a stub in tests and the
// host-touching adapters stay in the infrastructure layer.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., PathResolver, Deployer)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/axiom-install/internal/domain"
)

// ConfigProvider loads the installer settings.
// Implementations typically read from ~/.config/axiom-install/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// HostProbe exposes the host state every decision is derived from.
// It never mutates the system.
type HostProbe interface {
	GOOS() string
	IsElevated() bool
	CanWrite(dir string) bool
	HomeDir() (string, error)
	FreeSpace(path string) (uint64, error)
	Getenv(key string) string
}

// CommandRunner runs subprocesses with a bounded context.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (domain.ExecutionResult, error)
	LookPath(name string) (string, error)
}

// EnvironmentValidator inspects the host without changing it.
type EnvironmentValidator interface {
	Validate(ctx context.Context) domain.ValidationReport
}

// PathResolver decides install scope and target directories.
// Calling Resolve twice in the same environment yields equal plans.
type PathResolver interface {
	Resolve() (domain.InstallationPlan, error)
	// Layout derives the deployed paths of plan; install and uninstall share it.
	Layout(plan domain.InstallationPlan) domain.DeployedLayout
}

// Deployer stages the payload and commits it into the plan's directories.
type Deployer interface {
	Deploy(ctx context.Context, plan domain.InstallationPlan, payload domain.Payload) (domain.DeployResult, error)
}

// DependencyInstaller installs optional interpreter packages the payload needs.
type DependencyInstaller interface {
	Install(ctx context.Context, plan domain.InstallationPlan, interpreter string) error
	Required() bool
}

// ProfileConfigurator owns the shell startup-file edit for both install and uninstall.
type ProfileConfigurator interface {
	Configure(plan domain.InstallationPlan) (domain.ConfigResult, error)
	Remove(plan domain.InstallationPlan) (domain.ProfileRemoval, error)
}

// Verifier checks the installed entry point.
type Verifier interface {
	Verify(ctx context.Context, plan domain.InstallationPlan) domain.VerificationResult
}

// Uninstaller removes what a prior install of the plan created.
type Uninstaller interface {
	Uninstall(ctx context.Context, plan domain.InstallationPlan) (domain.UninstallResult, error)
}

// ConfirmationPrompter asks the user before destroying user data.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// Progress renders activity while a long subprocess runs.
type Progress interface {
	Start()
	Stop()
}

// HistoryRepository persists finished runs.
type HistoryRepository interface {
	Save(domain.HistoryRecord) error
	// Recent returns up to limit records, newest first; limit <= 0 means all.
	Recent(limit int) ([]domain.HistoryRecord, error)
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
