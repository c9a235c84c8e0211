package domain

// Config mirrors ~/.config/axiom-install/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Payload             PayloadSettings    `yaml:"payload"`
	Runtime             RuntimeSettings    `yaml:"runtime"`
	Install             InstallSettings    `yaml:"install"`
	Shell               ShellSettings      `yaml:"shell"`
	Verify              VerifySettings     `yaml:"verify"`
	Editor              EditorDefaults     `yaml:"editor"`
	History             HistorySettings    `yaml:"history"`
	Dependencies        DependencySettings `yaml:"dependencies"`
}

// PayloadSettings locates the source package.
type PayloadSettings struct {
	SourceDir       string   `yaml:"source_dir"`
	EntryPoint      string   `yaml:"entry_point"`
	ModulesDir      string   `yaml:"modules_dir"`
	Assets          []string `yaml:"assets"`
	VerifyChecksums bool     `yaml:"verify_checksums"`
}

// RuntimeSettings describes the interpreter requirement.
type RuntimeSettings struct {
	Candidates     []string `yaml:"candidates"`
	MinimumVersion string   `yaml:"minimum_version"`
	TerminalModule string   `yaml:"terminal_module"`
}

// InstallSettings controls scope resolution and optional integrations.
type InstallSettings struct {
	Scope        string `yaml:"scope"`
	SystemPrefix string `yaml:"system_prefix"`
	DesktopEntry bool   `yaml:"desktop_entry"`
}

// ShellSettings controls the startup-file edit.
type ShellSettings struct {
	Alias     bool   `yaml:"alias"`
	AliasName string `yaml:"alias_name"`
}

// VerifySettings bounds the post-install probe.
type VerifySettings struct {
	VersionFlag    string `yaml:"version_flag"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// EditorDefaults seeds the generated config.toml.
type EditorDefaults struct {
	TabSize            int    `yaml:"tab_size"`
	AutoIndent         bool   `yaml:"auto_indent"`
	LineNumbers        bool   `yaml:"line_numbers"`
	SyntaxHighlighting bool   `yaml:"syntax_highlighting"`
	Theme              string `yaml:"theme"`
	ColorScheme        string `yaml:"color_scheme"`
	StatusBar          bool   `yaml:"status_bar"`
	Ruler              bool   `yaml:"ruler"`
}

// HistorySettings configures the run history store.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DependencySettings lists interpreter packages installed before deployment.
type DependencySettings struct {
	Packages       []string `yaml:"packages"`
	TimeoutSeconds int      `yaml:"timeout"`
}
