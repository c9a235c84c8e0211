package deploy

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/doeshing/axiom-install/assets"
	"github.com/doeshing/axiom-install/internal/domain"
)

var templates = template.Must(template.ParseFS(assets.Templates, "templates/*.tmpl"))

type templateData struct {
	AppName     string
	DisplayName string
	DataDir     string
	LibDir      string
	EntryPoint  string
	ModulesDir  string
	Interpreter string
	BinaryPath  string
}

func newTemplateData(layout domain.DeployedLayout, payload domain.Payload) templateData {
	return templateData{
		AppName:     domain.AppName,
		DisplayName: domain.DisplayName,
		DataDir:     layout.DataDir,
		LibDir:      domain.LibDirName,
		EntryPoint:  payload.EntryPoint,
		ModulesDir:  payload.ModulesDir,
		Interpreter: payload.Interpreter,
		BinaryPath:  layout.BinaryPath,
	}
}

// renderLauncher picks the POSIX or cmd launcher for goos.
func renderLauncher(goos string, data templateData) ([]byte, error) {
	name := "launcher.sh.tmpl"
	if goos == "windows" {
		name = "launcher.cmd.tmpl"
	}
	return execute(name, data)
}

func renderDesktopEntry(data templateData) ([]byte, error) {
	return execute("axiom.desktop.tmpl", data)
}

func execute(name string, data templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
