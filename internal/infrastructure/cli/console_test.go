package cli

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/axiom-install/internal/domain"
)

func TestConsoleReportShowsFixesForProblems(t *testing.T) {
	var out bytes.Buffer
	NewConsole(&out).Report(domain.ValidationReport{Checks: []domain.HealthCheck{
		{Name: "Runtime", Status: domain.HealthOK, Details: "python3 3.12.1", Fix: "unused"},
		{Name: "Disk space", Status: domain.HealthWarn, Details: "low", Fix: "free some disk space"},
		{Name: "Terminal library", Status: domain.HealthError, Details: "no curses", Fix: "install curses"},
	}})

	text := out.String()
	assert.Contains(t, text, "✓ Runtime: python3 3.12.1")
	assert.NotContains(t, text, "unused")
	assert.Contains(t, text, "! Disk space: low")
	assert.Contains(t, text, "fix: free some disk space")
	assert.Contains(t, text, "✗ Terminal library: no curses")
	assert.Contains(t, text, "fix: install curses")
}

func TestConsoleOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.Outcome
		want    []string
		absent  []string
	}{
		{
			name: "complete install",
			outcome: domain.Outcome{
				Action: domain.ActionInstall,
				State:  domain.StateComplete,
				Plan:   domain.InstallationPlan{Scope: domain.ScopeUser},
				Layout: domain.DeployedLayout{BinaryPath: "/home/u/.local/bin/axiom", DataDir: "/home/u/.local/share/axiom"},
				Profile: domain.ConfigResult{
					PathAdded: true,
					Edit:      domain.ShellProfileEdit{RCFile: "/home/u/.bashrc"},
				},
				Verification: domain.VerificationResult{ExecutableFound: true, VersionProbeOk: true, Details: "axiom 1.0"},
			},
			want: []string{
				"installed /home/u/.local/bin/axiom (user scope)",
				"source /home/u/.bashrc",
				"verified: axiom 1.0",
				"install complete",
			},
		},
		{
			name: "warnings are counted",
			outcome: domain.Outcome{
				Action:   domain.ActionInstall,
				State:    domain.StateCompleteWithWarnings,
				Warnings: []string{"Disk space: low", "verification failed"},
				Profile:  domain.ConfigResult{Skipped: true},
			},
			want:   []string{"! Disk space: low", "! verification failed", "install finished with 2 warnings"},
			absent: []string{"install complete", "verified:"},
		},
		{
			name: "aborted install explains the remedy",
			outcome: domain.Outcome{
				Action: domain.ActionInstall,
				State:  domain.StateAborted,
				Err:    fmt.Errorf("deploy: %w", domain.ErrElevationUnavailable),
			},
			want:   []string{"install aborted: deploy: elevation required", "--scope user"},
			absent: []string{"installed"},
		},
		{
			name: "aborted validation lists check fixes",
			outcome: domain.Outcome{
				Action: domain.ActionInstall,
				State:  domain.StateAborted,
				Err:    fmt.Errorf("environment validation failed: %w", domain.ErrRuntimeMissing),
				Validation: domain.ValidationReport{Checks: []domain.HealthCheck{
					{Name: "Runtime", Status: domain.HealthError, Fix: "install Python 3.8 or newer"},
				}},
			},
			want: []string{"fix: install Python 3.8 or newer"},
		},
		{
			name: "uninstall",
			outcome: domain.Outcome{
				Action: domain.ActionUninstall,
				State:  domain.StateComplete,
				Uninstall: domain.UninstallResult{
					Removed: []string{"/home/u/.local/bin/axiom"},
					Kept:    []string{"/home/u/.local/share/axiom/themes"},
					Missing: []string{"/a", "/b"},
					Profile: domain.ProfileRemoval{RCFile: "/home/u/.zshrc", BackupFile: "/home/u/.zshrc.axiom-backup-x", Removed: true},
				},
			},
			want: []string{
				"removed /home/u/.local/bin/axiom",
				"kept /home/u/.local/share/axiom/themes",
				"2 paths already absent",
				"cleaned /home/u/.zshrc",
				"backup: /home/u/.zshrc.axiom-backup-x",
				"uninstall complete",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			NewConsole(&out).Outcome(tt.outcome)
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
			for _, absent := range tt.absent {
				assert.NotContains(t, out.String(), absent)
			}
		})
	}
}

func TestConsoleHistory(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.HistoryRecord{
		{Action: domain.ActionInstall, Scope: domain.ScopeUser, State: domain.StateComplete, BinaryPath: "/u/bin/axiom", Timestamp: now.Add(-2 * time.Hour)},
		{Action: domain.ActionInstall, Scope: domain.ScopeUser, State: domain.StateCompleteWithWarnings, Timestamp: now.Add(-48 * time.Hour)},
		{Action: domain.ActionUninstall, Scope: domain.ScopeSystem, State: domain.StateAborted, Timestamp: now.Add(-72 * time.Hour)},
	}

	var out bytes.Buffer
	NewConsole(&out).History(records, now)

	text := out.String()
	assert.Contains(t, text, "/u/bin/axiom")
	assert.Contains(t, text, "2 hours ago")
	assert.Contains(t, text, "3 runs: 1 complete, 1 with warnings, 1 aborted")
}
