package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/axiom-install/assets"
	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/pkg/filesystem"
	"github.com/doeshing/axiom-install/internal/ports"
)

// EnvConfigPath overrides the settings location.
const EnvConfigPath = "AXIOM_INSTALL_CONFIG"

// FileLoader loads YAML settings from ~/.config/axiom-install/config.yaml
// (overridable via AXIOM_INSTALL_CONFIG). A missing file yields the embedded
// defaults and is never created.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return domain.Config{}, err
	}

	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.Config{}, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg, err = hydrateDefaults(cfg)
	if err != nil {
		return domain.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the settings file that Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".config", "axiom-install", "config.yaml")
}

func defaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("embedded defaults: %w", err)
	}
	return cfg, nil
}

func hydrateDefaults(cfg domain.Config) (domain.Config, error) {
	if cfg.Payload.EntryPoint == "" {
		cfg.Payload.EntryPoint = domain.DefaultEntryPoint
	}
	if cfg.Payload.ModulesDir == "" {
		cfg.Payload.ModulesDir = domain.DefaultModulesDir
	}
	if cfg.Payload.SourceDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return cfg, fmt.Errorf("resolve source directory: %w", err)
		}
		cfg.Payload.SourceDir = wd
	}
	source, err := filepath.Abs(filesystem.ExpandPath(cfg.Payload.SourceDir))
	if err != nil {
		return cfg, err
	}
	cfg.Payload.SourceDir = source

	if len(cfg.Runtime.Candidates) == 0 {
		cfg.Runtime.Candidates = []string{"python3", "python"}
	}
	if cfg.Runtime.TerminalModule == "" {
		cfg.Runtime.TerminalModule = domain.DefaultTerminalModule
	}
	if cfg.Install.SystemPrefix == "" {
		cfg.Install.SystemPrefix = domain.DefaultSystemPrefix
	}
	if cfg.History.Path != "" {
		cfg.History.Path = filesystem.ExpandPath(cfg.History.Path)
	}
	return cfg, nil
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
