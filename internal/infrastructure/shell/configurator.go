package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/ports"
)

// Configurator appends the PATH and alias block to the user's startup file
// and removes it again on uninstall.
type Configurator struct {
	probe     ports.HostProbe
	aliasName string
	logger    ports.Logger
	now       func() time.Time
}

// NewConfigurator builds a configurator. An empty aliasName disables the alias.
func NewConfigurator(probe ports.HostProbe, aliasName string, logger ports.Logger) *Configurator {
	return &Configurator{probe: probe, aliasName: aliasName, logger: logger, now: time.Now}
}

// Configure edits the startup file of the detected shell. System scope is skipped.
func (c *Configurator) Configure(plan domain.InstallationPlan) (domain.ConfigResult, error) {
	if plan.Scope != domain.ScopeUser {
		return domain.ConfigResult{Skipped: true}, nil
	}
	name, rcFile, fallback, err := c.target()
	if err != nil {
		return domain.ConfigResult{}, err
	}
	edit := c.editFor(name, rcFile, plan.BinDir)
	result := domain.ConfigResult{Shell: name, Edit: edit, Fallback: fallback}

	contents, err := os.ReadFile(rcFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return result, fmt.Errorf("read %s: %w", rcFile, err)
	}
	existing := string(contents)

	var block []string
	if !listsDir(existing, plan.BinDir) {
		block = append(block, edit.ExportLine)
		result.PathAdded = true
	}
	if edit.AliasLine != "" && !hasAlias(existing, c.aliasName) {
		block = append(block, edit.AliasLine)
		result.AliasAdded = true
	}
	if len(block) == 0 {
		result.AlreadyConfigured = true
		c.debug("shell profile already configured", map[string]interface{}{"rc_file": rcFile})
		return result, nil
	}
	if !hasLine(existing, edit.Marker) {
		block = append([]string{edit.Marker}, block...)
	}

	if err := appendBlock(rcFile, existing, block); err != nil {
		return result, err
	}
	c.debug("shell profile updated", map[string]interface{}{
		"rc_file":  rcFile,
		"shell":    name,
		"path":     result.PathAdded,
		"alias":    result.AliasAdded,
		"fallback": fallback,
	})
	return result, nil
}

// Remove deletes the marker and the export and alias lines that follow it,
// after backing up the file. Matching lines above the marker are the user's.
func (c *Configurator) Remove(plan domain.InstallationPlan) (domain.ProfileRemoval, error) {
	if plan.Scope != domain.ScopeUser {
		return domain.ProfileRemoval{}, nil
	}
	name, rcFile, _, err := c.target()
	if err != nil {
		return domain.ProfileRemoval{}, err
	}
	removal := domain.ProfileRemoval{RCFile: rcFile}

	info, err := os.Stat(rcFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return removal, nil
		}
		return removal, err
	}
	contents, err := os.ReadFile(rcFile)
	if err != nil {
		return removal, err
	}

	edit := c.editFor(name, rcFile, plan.BinDir)
	owned := map[string]bool{edit.ExportLine: true}
	if edit.AliasLine != "" {
		owned[edit.AliasLine] = true
	}

	lines := strings.Split(string(contents), "\n")
	filtered := make([]string, 0, len(lines))
	marked := false
	for _, line := range lines {
		if line == edit.Marker || (marked && owned[line]) {
			marked = true
			removal.Removed = true
			continue
		}
		filtered = append(filtered, line)
	}
	if !removal.Removed {
		return removal, nil
	}

	backup := fmt.Sprintf("%s.axiom-backup-%s", rcFile, c.now().Format(domain.BackupTimestampFormat))
	if err := os.WriteFile(backup, contents, info.Mode().Perm()); err != nil {
		return domain.ProfileRemoval{RCFile: rcFile}, fmt.Errorf("backup %s: %w", rcFile, err)
	}
	removal.BackupFile = backup

	if err := os.WriteFile(rcFile, []byte(strings.Join(filtered, "\n")), info.Mode().Perm()); err != nil {
		return removal, err
	}
	c.debug("shell profile cleaned", map[string]interface{}{"rc_file": rcFile, "backup": backup})
	return removal, nil
}

func (c *Configurator) target() (domain.ShellName, string, bool, error) {
	home, err := c.probe.HomeDir()
	if err != nil || home == "" {
		return domain.ShellUnknown, "", false, fmt.Errorf("%w: %v", domain.ErrHomeUnavailable, err)
	}
	name := normalizeShell(c.probe.Getenv("SHELL"))
	rcFile, ok := rcFileFor(name, home)
	return name, rcFile, !ok, nil
}

func (c *Configurator) editFor(name domain.ShellName, rcFile, binDir string) domain.ShellProfileEdit {
	edit := domain.ShellProfileEdit{RCFile: rcFile, Marker: domain.ProfileMarker}
	if name == domain.ShellFish {
		edit.ExportLine = fmt.Sprintf("set -gx PATH %s $PATH", binDir)
		if c.aliasName != "" {
			edit.AliasLine = fmt.Sprintf("alias %s %s", c.aliasName, domain.AppName)
		}
		return edit
	}
	edit.ExportLine = fmt.Sprintf("export PATH=\"%s:$PATH\"", binDir)
	if c.aliasName != "" {
		edit.AliasLine = fmt.Sprintf("alias %s='%s'", c.aliasName, domain.AppName)
	}
	return edit
}

func (c *Configurator) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func normalizeShell(shellEnv string) domain.ShellName {
	if shellEnv == "" {
		return domain.ShellUnknown
	}
	switch strings.ToLower(filepath.Base(shellEnv)) {
	case "zsh":
		return domain.ShellZsh
	case "bash":
		return domain.ShellBash
	case "fish":
		return domain.ShellFish
	case "ksh", "mksh":
		return domain.ShellKsh
	default:
		return domain.ShellUnknown
	}
}

// rcFileFor returns the startup file of shell and false when the generic profile is used.
func rcFileFor(shell domain.ShellName, home string) (string, bool) {
	switch shell {
	case domain.ShellZsh:
		return filepath.Join(home, ".zshrc"), true
	case domain.ShellBash:
		return filepath.Join(home, ".bashrc"), true
	case domain.ShellFish:
		return filepath.Join(home, ".config", "fish", "config.fish"), true
	case domain.ShellKsh:
		return filepath.Join(home, ".kshrc"), true
	default:
		return filepath.Join(home, ".profile"), false
	}
}

func hasAlias(contents, alias string) bool {
	prefix := "alias " + alias
	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		rest := line[len(prefix):]
		if rest == "" || rest[0] == '=' || rest[0] == ' ' || rest[0] == '\t' {
			return true
		}
	}
	return false
}

// listsDir reports whether dir occurs in contents as a whole path entry.
func listsDir(contents, dir string) bool {
	if dir == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(contents[from:], dir)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(dir)
		if (start == 0 || isPathBoundary(contents[start-1])) && (end == len(contents) || isPathBoundary(contents[end])) {
			return true
		}
		from = start + 1
	}
}

func isPathBoundary(b byte) bool {
	switch b {
	case ':', '"', '\'', '=', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func hasLine(contents, want string) bool {
	for _, line := range strings.Split(contents, "\n") {
		if line == want {
			return true
		}
	}
	return false
}

func appendBlock(path, existing string, block []string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.FilePermissions)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	payload := strings.Join(block, "\n") + "\n"
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		payload = "\n" + payload
	}
	if _, err := f.WriteString(payload); err != nil {
		_ = f.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}
	return f.Close()
}

var _ ports.ProfileConfigurator = (*Configurator)(nil)
