package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doeshing/axiom-install/internal/app"
	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/infrastructure/appconfig"
	"github.com/doeshing/axiom-install/internal/ports"
)

func newDoctorCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the host without changing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := s.inspect(cmd)
			if err != nil {
				return err
			}
			return runDoctorDiagnostics(cmd.Context(), NewConsole(cmd.OutOrStdout()), container)
		},
	}
}

// runDoctorDiagnostics prints the validation report followed by payload and
// installation checks. Fatal checks yield exit code 1.
func runDoctorDiagnostics(ctx context.Context, console *Console, container *app.Container) error {
	report := container.Validator.Validate(ctx)
	report.Checks = append(report.Checks, payloadCheck(container.Payload))
	report.Checks = append(report.Checks, installedChecks(container.Runner)...)

	console.Title("axiom-install doctor")
	console.Report(report)
	if len(report.Fatal()) > 0 {
		return &ExitError{Code: domain.ExitFatal}
	}
	return nil
}

func payloadCheck(payload domain.Payload) domain.HealthCheck {
	const name = "Payload"
	for _, path := range []string{payload.EntryPointPath(), payload.ModulesPath()} {
		if _, err := os.Stat(path); err != nil {
			return domain.HealthCheck{
				Name:    name,
				Status:  domain.HealthError,
				Details: fmt.Sprintf("%s not found", path),
				Fix:     "run from the unpacked package or pass --source",
				Err:     fmt.Errorf("%w: %s", domain.ErrPayloadMissing, path),
			}
		}
	}
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: payload.SourceDir}
}

// installedChecks inspect an existing installation found on PATH.
func installedChecks(runner ports.CommandRunner) []domain.HealthCheck {
	binary, err := runner.LookPath(domain.AppName)
	if err != nil {
		return []domain.HealthCheck{{
			Name:    "Installed command",
			Status:  domain.HealthWarn,
			Details: domain.AppName + " is not on PATH",
			Fix:     "run axiom-install",
		}}
	}
	checks := []domain.HealthCheck{{Name: "Installed command", Status: domain.HealthOK, Details: binary}}

	launcher, err := filepath.EvalSymlinks(binary)
	if err != nil {
		return checks
	}
	configFile := filepath.Join(filepath.Dir(launcher), "config", domain.ConfigFileName)
	if check, ok := editorConfigCheck(configFile); ok {
		checks = append(checks, check)
	}
	return checks
}

// editorConfigCheck reports on config.toml; ok is false when the file is absent.
func editorConfigCheck(path string) (domain.HealthCheck, bool) {
	const name = "Editor config"
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.HealthCheck{}, false
	}
	if err != nil {
		return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: err.Error()}, true
	}
	defaults, err := appconfig.Decode(raw)
	if err != nil {
		return domain.HealthCheck{
			Name:    name,
			Status:  domain.HealthWarn,
			Details: fmt.Sprintf("%s: %v", path, err),
			Fix:     "fix the syntax or delete the file and re-install",
		}, true
	}
	return domain.HealthCheck{
		Name:    name,
		Status:  domain.HealthOK,
		Details: fmt.Sprintf("%s (tab size %d, theme %s)", path, defaults.TabSize, defaults.Theme),
	}, true
}
