package domain

// RunState is a step of the installer state machine.
type RunState string

const (
	StateIdle                 RunState = "idle"
	StateValidating           RunState = "validating"
	StatePathResolving        RunState = "path-resolving"
	StateDeploying            RunState = "deploying"
	StateShellConfiguring     RunState = "shell-configuring"
	StateVerifying            RunState = "verifying"
	StateUninstalling         RunState = "uninstalling"
	StateComplete             RunState = "complete"
	StateCompleteWithWarnings RunState = "complete-with-warnings"
	StateAborted              RunState = "aborted"
)

// Terminal reports whether no further transitions follow s.
func (s RunState) Terminal() bool {
	return s == StateComplete || s == StateCompleteWithWarnings || s == StateAborted
}

// Process exit codes.
const (
	ExitOK       = 0
	ExitFatal    = 1
	ExitWarnings = 2
)

// Action distinguishes install and uninstall runs.
type Action string

const (
	ActionInstall   Action = "install"
	ActionUninstall Action = "uninstall"
)

// Outcome is the result of one orchestrated run.
type Outcome struct {
	Action       Action
	State        RunState
	Warnings     []string
	Err          error
	Validation   ValidationReport
	Plan         InstallationPlan
	Layout       DeployedLayout
	Profile      ConfigResult
	Verification VerificationResult
	Uninstall    UninstallResult
}

// ExitCode maps the terminal state to a process exit code.
func (o Outcome) ExitCode() int {
	switch o.State {
	case StateComplete:
		return ExitOK
	case StateCompleteWithWarnings:
		return ExitWarnings
	default:
		return ExitFatal
	}
}

// UninstallResult lists what the uninstaller touched.
type UninstallResult struct {
	Removed  []string
	Kept     []string
	Missing  []string
	Profile  ProfileRemoval
	Declined bool
}
