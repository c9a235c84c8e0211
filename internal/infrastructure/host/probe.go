// Package host reads the machine state installer decisions are derived from.
package host

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/ports"
)

// Probe implements ports.HostProbe against the running process.
type Probe struct{}

// NewProbe returns a host probe.
func NewProbe() *Probe {
	return &Probe{}
}

// GOOS returns the raw host identifier.
func (p *Probe) GOOS() string {
	return runtime.GOOS
}

// HomeDir returns $HOME (or the platform equivalent).
func (p *Probe) HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", domain.ErrHomeUnavailable
	}
	return home, nil
}

// Getenv reads an environment variable.
func (p *Probe) Getenv(key string) string {
	return os.Getenv(key)
}

// FreeSpace reports free bytes on the filesystem holding path, walking up to
// the nearest existing ancestor first.
func (p *Probe) FreeSpace(path string) (uint64, error) {
	return freeSpace(NearestExisting(path))
}

// CanWrite reports whether the process may create entries in dir. A missing
// dir is judged by its nearest existing ancestor.
func (p *Probe) CanWrite(dir string) bool {
	if dir == "" {
		return false
	}
	return canWrite(NearestExisting(dir))
}

// IsElevated reports whether the process runs with an administrative identity.
func (p *Probe) IsElevated() bool {
	return isElevated()
}

// NearestExisting returns path or its closest ancestor that exists.
func NearestExisting(path string) string {
	current := filepath.Clean(path)
	for {
		if _, err := os.Stat(current); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return current
		}
		current = parent
	}
}

var _ ports.HostProbe = (*Probe)(nil)
