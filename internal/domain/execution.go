package domain

// ExecutionResult captures a finished subprocess.
type ExecutionResult struct {
	ExitCode   int
	Stdout     string
	Stderr     string
	DurationMS int64
	TimedOut   bool
}

// DeployResult pairs the created layout with non-fatal deployment warnings.
type DeployResult struct {
	Layout   DeployedLayout
	Warnings []string
}
