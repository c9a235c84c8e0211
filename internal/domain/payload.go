package domain

import "path/filepath"

// Payload is the externally supplied application. It is never mutated.
type Payload struct {
	SourceDir  string
	EntryPoint string
	ModulesDir string
	// Assets are optional files copied next to the entry point when present.
	Assets []string
	// Interpreter is the validated runtime the launcher executes.
	Interpreter string
}

// EntryPointPath is the absolute source path of the entry point.
func (p Payload) EntryPointPath() string {
	return filepath.Join(p.SourceDir, p.EntryPoint)
}

// ModulesPath is the absolute source path of the supporting-module directory.
func (p Payload) ModulesPath() string {
	return filepath.Join(p.SourceDir, p.ModulesDir)
}

// ChecksumPath is the manifest location inside the source package.
func (p Payload) ChecksumPath() string {
	return filepath.Join(p.SourceDir, ChecksumFile)
}
