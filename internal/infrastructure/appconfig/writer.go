// Package appconfig renders the editor's config.toml from installer defaults.
package appconfig

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/doeshing/axiom-install/internal/domain"
)

type editorFile struct {
	Editor      editorSection     `toml:"editor"`
	Keybindings keybindingSection `toml:"keybindings"`
	Appearance  appearanceSection `toml:"appearance"`
}

type editorSection struct {
	TabSize            int    `toml:"tab_size"`
	AutoIndent         bool   `toml:"auto_indent"`
	LineNumbers        bool   `toml:"line_numbers"`
	SyntaxHighlighting bool   `toml:"syntax_highlighting"`
	Theme              string `toml:"theme"`
}

type keybindingSection struct {
	Save string `toml:"save"`
	Quit string `toml:"quit"`
	Help string `toml:"help"`
}

type appearanceSection struct {
	ColorScheme string `toml:"color_scheme"`
	StatusBar   bool   `toml:"status_bar"`
	Ruler       bool   `toml:"ruler"`
}

const header = "# Axiom editor configuration, generated by axiom-install.\n# Edits are preserved across re-installs.\n\n"

// Render encodes defaults as config.toml content.
func Render(defaults domain.EditorDefaults) ([]byte, error) {
	file := editorFile{
		Editor: editorSection{
			TabSize:            defaults.TabSize,
			AutoIndent:         defaults.AutoIndent,
			LineNumbers:        defaults.LineNumbers,
			SyntaxHighlighting: defaults.SyntaxHighlighting,
			Theme:              orDefault(defaults.Theme, "default"),
		},
		Keybindings: keybindingSection{Save: "ctrl+s", Quit: "ctrl+q", Help: "f1"},
		Appearance: appearanceSection{
			ColorScheme: orDefault(defaults.ColorScheme, "default"),
			StatusBar:   defaults.StatusBar,
			Ruler:       defaults.Ruler,
		},
	}
	if file.Editor.TabSize == 0 {
		file.Editor.TabSize = 4
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if err := toml.NewEncoder(&buf).Encode(file); err != nil {
		return nil, fmt.Errorf("encode config.toml: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses config.toml content back into defaults.
func Decode(raw []byte) (domain.EditorDefaults, error) {
	var file editorFile
	if _, err := toml.Decode(string(raw), &file); err != nil {
		return domain.EditorDefaults{}, err
	}
	return domain.EditorDefaults{
		TabSize:            file.Editor.TabSize,
		AutoIndent:         file.Editor.AutoIndent,
		LineNumbers:        file.Editor.LineNumbers,
		SyntaxHighlighting: file.Editor.SyntaxHighlighting,
		Theme:              file.Editor.Theme,
		ColorScheme:        file.Appearance.ColorScheme,
		StatusBar:          file.Appearance.StatusBar,
		Ruler:              file.Appearance.Ruler,
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
