package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/doeshing/axiom-install/internal/application/install"
	"github.com/doeshing/axiom-install/internal/application/validate"
	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/infrastructure/config"
	"github.com/doeshing/axiom-install/internal/infrastructure/deploy"
	"github.com/doeshing/axiom-install/internal/infrastructure/executor"
	"github.com/doeshing/axiom-install/internal/infrastructure/history"
	"github.com/doeshing/axiom-install/internal/infrastructure/host"
	"github.com/doeshing/axiom-install/internal/infrastructure/paths"
	"github.com/doeshing/axiom-install/internal/infrastructure/shell"
	"github.com/doeshing/axiom-install/internal/infrastructure/uninstall"
	"github.com/doeshing/axiom-install/internal/infrastructure/verify"
	"github.com/doeshing/axiom-install/internal/pkg/logger"
	"github.com/doeshing/axiom-install/internal/ports"
)

// Options are the command-line overrides applied on top of the settings file.
type Options struct {
	ConfigPath string
	SourceDir  string
	Scope      string
	NoAlias    bool
	Verbose    bool
	// ReadOnly skips opening the history store.
	ReadOnly bool
	// Prompter and Progress are supplied by the CLI layer.
	Prompter ports.ConfirmationPrompter
	Progress ports.Progress
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Probe          *host.Probe
	Runner         ports.CommandRunner
	Validator      *validate.Service
	Resolver       *paths.Resolver
	Orchestrator   *install.Orchestrator
	// HistoryStore is nil when history is disabled.
	HistoryStore *history.SQLiteStore
	Payload      domain.Payload
}

// BuildContainer constructs the dependency graph. Nothing on the host is
// modified here.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return nil, err
	}

	minimum, err := cfg.MinimumRuntime()
	if err != nil {
		return nil, err
	}
	preference, err := cfg.ScopePreference()
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(opts.Verbose)
	probe := host.NewProbe()
	runner := executor.NewLocalRunner()

	resolver := paths.NewResolver(probe, paths.Options{
		SystemPrefix: cfg.Install.SystemPrefix,
		Preference:   preference,
		DesktopEntry: cfg.Install.DesktopEntry,
	}, log)

	validator := &validate.Service{
		Probe:          probe,
		Runner:         runner,
		Logger:         log,
		Candidates:     cfg.Runtime.Candidates,
		Minimum:        minimum,
		TerminalModule: cfg.Runtime.TerminalModule,
		SpaceTarget:    spaceTarget(probe, cfg, preference),
		MinFreeBytes:   domain.MinFreeSpaceBytes,
		ProbeTimeout:   domain.DefaultProbeTimeout,
	}

	deployer := deploy.NewDeployer(resolver, runner, deploy.Options{
		GOOS:            probe.GOOS(),
		VerifyChecksums: cfg.Payload.VerifyChecksums,
		DesktopEntry:    cfg.Install.DesktopEntry,
		Editor:          cfg.Editor,
	}, log)

	packages := cfg.Dependencies.Packages
	if len(packages) == 0 {
		packages = deploy.DefaultPackages(probe.GOOS())
	}
	dependencies := deploy.NewPipInstaller(runner, opts.Progress, packages, cfg.DependencyTimeout(), log)

	profile := shell.NewConfigurator(probe, cfg.AliasName(), log)
	verifier := verify.NewVerifier(runner, cfg.VersionFlag(), cfg.VerifyTimeout(), log)
	uninstaller := uninstall.NewUninstaller(resolver, runner, profile, opts.Prompter, log)

	var historyStore *history.SQLiteStore
	var historyRepo ports.HistoryRepository
	if cfg.History.Enabled && !opts.ReadOnly {
		historyStore = history.NewSQLiteStore(cfg.History.Path)
		historyRepo = historyStore
	}

	orchestrator := &install.Orchestrator{
		Validator:    validator,
		Resolver:     resolver,
		Deployer:     deployer,
		Dependencies: dependencies,
		Profile:      profile,
		Verifier:     verifier,
		Uninstaller:  uninstaller,
		History:      historyRepo,
		Probe:        probe,
		Logger:       log,
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Probe:          probe,
		Runner:         runner,
		Validator:      validator,
		Resolver:       resolver,
		Orchestrator:   orchestrator,
		HistoryStore:   historyStore,
		Payload:        cfg.PayloadSpec(),
	}, nil
}

// Close releases the history database.
func (c *Container) Close() error {
	if c.HistoryStore == nil {
		return nil
	}
	return c.HistoryStore.Close()
}

func applyOverrides(cfg *domain.Config, opts Options) error {
	if opts.SourceDir != "" {
		abs, err := filepath.Abs(opts.SourceDir)
		if err != nil {
			return fmt.Errorf("resolve --source: %w", err)
		}
		cfg.Payload.SourceDir = abs
	}
	if opts.Scope != "" {
		if _, err := domain.ParseScopePreference(opts.Scope); err != nil {
			return err
		}
		cfg.Install.Scope = opts.Scope
	}
	if opts.NoAlias {
		cfg.Shell.Alias = false
	}
	return nil
}

// spaceTarget is the data directory the probable scope installs into.
func spaceTarget(probe ports.HostProbe, cfg domain.Config, preference domain.ScopePreference) string {
	systemData := filepath.Join(cfg.Install.SystemPrefix, "share", domain.AppName)
	if preference == domain.ScopeForceSystem {
		return systemData
	}
	home, err := probe.HomeDir()
	if err != nil {
		return systemData
	}
	if preference == domain.ScopeAuto && (probe.IsElevated() || probe.CanWrite(filepath.Join(cfg.Install.SystemPrefix, "bin"))) {
		return systemData
	}
	return filepath.Join(home, ".local", "share", domain.AppName)
}
