package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/axiom-install/internal/domain"
)

// Console formats user-facing output. Its styles are bound to the writer, so
// colors disappear when output is redirected.
type Console struct {
	out   io.Writer
	title lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	dim   lipgloss.Style
}

// NewConsole builds a console writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		out:   w,
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("214")),
		fail:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (c *Console) Title(text string)   { fmt.Fprintln(c.out, c.title.Render(text)) }
func (c *Console) Success(text string) { fmt.Fprintln(c.out, c.ok.Render("✓")+" "+text) }
func (c *Console) Warning(text string) { fmt.Fprintln(c.out, c.warn.Render("!")+" "+text) }
func (c *Console) Failure(text string) { fmt.Fprintln(c.out, c.fail.Render("✗")+" "+text) }
func (c *Console) Detail(text string)  { fmt.Fprintln(c.out, "  "+c.dim.Render(text)) }

// Report prints every validation check with its remediation.
func (c *Console) Report(report domain.ValidationReport) {
	for _, check := range report.Checks {
		line := check.Name + ": " + check.Details
		switch check.Status {
		case domain.HealthOK:
			c.Success(line)
			continue
		case domain.HealthWarn:
			c.Warning(line)
		default:
			c.Failure(line)
		}
		if check.Fix != "" {
			c.Detail("fix: " + check.Fix)
		}
	}
}

// Outcome summarizes a finished install or uninstall run.
func (c *Console) Outcome(outcome domain.Outcome) {
	if outcome.State == domain.StateAborted {
		c.aborted(outcome)
		return
	}

	if outcome.Action == domain.ActionUninstall {
		c.uninstallSummary(outcome.Uninstall)
	} else {
		c.installSummary(outcome)
	}
	for _, warning := range outcome.Warnings {
		c.Warning(warning)
	}

	if outcome.State == domain.StateCompleteWithWarnings {
		c.Warning(fmt.Sprintf("%s finished with %d %s", outcome.Action, len(outcome.Warnings), plural(len(outcome.Warnings), "warning")))
		return
	}
	c.Success(fmt.Sprintf("%s complete", outcome.Action))
}

func (c *Console) installSummary(outcome domain.Outcome) {
	c.Success(fmt.Sprintf("installed %s (%s scope)", outcome.Layout.BinaryPath, outcome.Plan.Scope))
	c.Detail("data: " + outcome.Layout.DataDir)
	if outcome.Layout.DesktopFile != "" {
		c.Detail("desktop entry: " + outcome.Layout.DesktopFile)
	}

	profile := outcome.Profile
	switch {
	case profile.Skipped:
	case profile.AlreadyConfigured:
		c.Detail("shell profile already configured: " + profile.Edit.RCFile)
	case profile.PathAdded || profile.AliasAdded:
		c.Success("updated " + profile.Edit.RCFile)
		c.Detail("open a new terminal or run: source " + profile.Edit.RCFile)
	}

	if outcome.Verification.OK() {
		c.Success("verified: " + outcome.Verification.Details)
	}
}

func (c *Console) uninstallSummary(result domain.UninstallResult) {
	for _, path := range result.Removed {
		c.Success("removed " + path)
	}
	for _, path := range result.Kept {
		c.Detail("kept " + path)
	}
	if len(result.Missing) > 0 {
		c.Detail(fmt.Sprintf("%d %s already absent", len(result.Missing), plural(len(result.Missing), "path")))
	}
	if result.Profile.Removed {
		c.Success("cleaned " + result.Profile.RCFile)
		c.Detail("backup: " + result.Profile.BackupFile)
	}
}

func (c *Console) aborted(outcome domain.Outcome) {
	c.Failure(fmt.Sprintf("%s aborted: %v", outcome.Action, outcome.Err))
	for _, check := range outcome.Validation.Fatal() {
		if check.Fix != "" {
			c.Detail("fix: " + check.Fix)
		}
	}
	if hint := remediation(outcome.Err); hint != "" {
		c.Detail("fix: " + hint)
	}
}

func remediation(err error) string {
	switch {
	case errors.Is(err, domain.ErrPayloadMissing):
		return "run the installer from the unpacked package or pass --source"
	case errors.Is(err, domain.ErrPayloadCorrupt):
		return "download the package again; its files do not match SHA256SUMS"
	case errors.Is(err, domain.ErrElevationUnavailable):
		return "re-run with administrator rights or pass --scope user"
	case errors.Is(err, domain.ErrHomeUnavailable):
		return "set HOME or pass --scope system"
	case errors.Is(err, domain.ErrInterrupted):
		return "nothing was changed; re-run the installer"
	default:
		return ""
	}
}

// History prints records newest first followed by per-state totals.
func (c *Console) History(records []domain.HistoryRecord, now time.Time) {
	counts := map[domain.RunState]int{}
	for _, rec := range records {
		counts[rec.State]++
		line := fmt.Sprintf("%-9s %-6s %-22s %s", rec.Action, rec.Scope, rec.State, rec.BinaryPath)
		when := humanize.RelTime(rec.Timestamp, now, "ago", "from now")
		fmt.Fprintln(c.out, line+"  "+c.dim.Render(when))
	}
	c.Detail(fmt.Sprintf("%d %s: %d complete, %d with warnings, %d aborted",
		len(records), plural(len(records), "run"),
		counts[domain.StateComplete], counts[domain.StateCompleteWithWarnings], counts[domain.StateAborted]))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
