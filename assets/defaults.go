package assets

import (
	"embed"
)

// DefaultConfigYAML contains the embedded default installer settings.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// Templates holds the launcher and desktop entry templates.
//
//go:embed templates/*.tmpl
var Templates embed.FS
