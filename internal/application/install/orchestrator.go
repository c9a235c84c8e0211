// Package install drives the installer state machine. Every stage is reached
// through a port, so the orchestrator itself never touches the host.
package install

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/ports"
)

// Orchestrator sequences validation, resolution, deployment, shell
// configuration and verification.
type Orchestrator struct {
	Validator    ports.EnvironmentValidator
	Resolver     ports.PathResolver
	Deployer     ports.Deployer
	Dependencies ports.DependencyInstaller
	Profile      ports.ProfileConfigurator
	Verifier     ports.Verifier
	Uninstaller  ports.Uninstaller
	History      ports.HistoryRepository
	Probe        ports.HostProbe
	Logger       ports.Logger
	Now          func() time.Time
}

// Options carries per-run input.
type Options struct {
	Payload domain.Payload
}

// run tracks one pass through the state machine.
type run struct {
	o       *Orchestrator
	outcome domain.Outcome
}

func (o *Orchestrator) begin(action domain.Action) *run {
	return &run{o: o, outcome: domain.Outcome{Action: action, State: domain.StateIdle}}
}

func (r *run) transition(to domain.RunState) {
	r.o.Logger.Debug("state transition", map[string]interface{}{
		"action": r.outcome.Action,
		"from":   r.outcome.State,
		"to":     to,
	})
	r.outcome.State = to
}

func (r *run) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.outcome.Warnings = append(r.outcome.Warnings, msg)
	r.o.Logger.Warn(msg, map[string]interface{}{"state": r.outcome.State})
}

func (r *run) abort(err error) domain.Outcome {
	r.stop(err)
	return r.finish()
}

// reject aborts without a history record. Used before anything is planned.
func (r *run) reject(err error) domain.Outcome {
	r.stop(err)
	return r.outcome
}

func (r *run) stop(err error) {
	r.o.Logger.Error("run aborted", err, map[string]interface{}{"state": r.outcome.State})
	r.outcome.Err = err
	r.transition(domain.StateAborted)
}

func (r *run) complete() domain.Outcome {
	if len(r.outcome.Warnings) > 0 {
		r.transition(domain.StateCompleteWithWarnings)
	} else {
		r.transition(domain.StateComplete)
	}
	return r.finish()
}

func (r *run) finish() domain.Outcome {
	r.o.record(r.outcome)
	return r.outcome
}

// Install runs Validating, PathResolving, Deploying, ShellConfiguring and
// Verifying. Fatal errors abort; warnings downgrade the terminal state.
// Runs rejected during validation leave no history record.
func (o *Orchestrator) Install(ctx context.Context, opts Options) domain.Outcome {
	if err := o.checkInstall(); err != nil {
		return domain.Outcome{Action: domain.ActionInstall, State: domain.StateAborted, Err: err}
	}
	r := o.begin(domain.ActionInstall)

	r.transition(domain.StateValidating)
	report := o.Validator.Validate(ctx)
	r.outcome.Validation = report
	for _, check := range report.Warnings() {
		r.warn("%s: %s", check.Name, check.Details)
	}
	if err := report.Err(); err != nil {
		return r.reject(fmt.Errorf("environment validation failed: %w", err))
	}

	r.transition(domain.StatePathResolving)
	plan, err := o.Resolver.Resolve()
	if err != nil {
		return r.abort(fmt.Errorf("resolve installation plan: %w", err))
	}
	r.outcome.Plan = plan
	r.outcome.Layout = o.Resolver.Layout(plan)

	r.transition(domain.StateDeploying)
	payload := opts.Payload
	if payload.Interpreter == "" {
		payload.Interpreter = report.Runtime.Path
	}
	deployed, err := o.Deployer.Deploy(ctx, plan, payload)
	if err != nil {
		return r.abort(fmt.Errorf("deploy: %w", err))
	}
	r.outcome.Layout = deployed.Layout
	for _, w := range deployed.Warnings {
		r.warn("%s", w)
	}
	if o.Dependencies != nil && o.Dependencies.Required() {
		if err := o.Dependencies.Install(ctx, plan, payload.Interpreter); err != nil {
			r.warn("dependency install failed: %v", err)
		}
	}

	r.transition(domain.StateShellConfiguring)
	o.configureShell(r, plan)

	r.transition(domain.StateVerifying)
	verification := o.Verifier.Verify(ctx, plan)
	r.outcome.Verification = verification
	if !verification.OK() {
		r.warn("verification failed: %s", verification.Details)
	}

	return r.complete()
}

func (o *Orchestrator) configureShell(r *run, plan domain.InstallationPlan) {
	if plan.Scope != domain.ScopeUser {
		if o.Probe != nil && !plan.OnSearchPath(o.Probe.Getenv("PATH")) {
			r.warn("%s is not on PATH; add it to your shell profile", plan.BinDir)
		}
		return
	}
	result, err := o.Profile.Configure(plan)
	r.outcome.Profile = result
	if err != nil {
		r.warn("shell profile not updated: %v; add %s to PATH manually", err, plan.BinDir)
		return
	}
	if result.Fallback {
		r.warn("unrecognized shell; PATH entry written to %s", result.Edit.RCFile)
	}
}

// Uninstall re-resolves the plan and removes what install created.
func (o *Orchestrator) Uninstall(ctx context.Context) domain.Outcome {
	if o.Resolver == nil || o.Uninstaller == nil || o.Logger == nil {
		return domain.Outcome{
			Action: domain.ActionUninstall,
			State:  domain.StateAborted,
			Err:    errors.New("install.Orchestrator uninstall dependencies not satisfied"),
		}
	}
	r := o.begin(domain.ActionUninstall)

	r.transition(domain.StatePathResolving)
	plan, err := o.Resolver.Resolve()
	if err != nil {
		return r.abort(fmt.Errorf("resolve installation plan: %w", err))
	}
	r.outcome.Plan = plan
	r.outcome.Layout = o.Resolver.Layout(plan)

	r.transition(domain.StateUninstalling)
	result, err := o.Uninstaller.Uninstall(ctx, plan)
	r.outcome.Uninstall = result
	if err != nil {
		return r.abort(fmt.Errorf("uninstall: %w", err))
	}

	r.transition(domain.StateComplete)
	return r.finish()
}

func (o *Orchestrator) checkInstall() error {
	if o.Validator == nil || o.Resolver == nil || o.Deployer == nil ||
		o.Profile == nil || o.Verifier == nil || o.Logger == nil {
		return errors.New("install.Orchestrator dependencies not satisfied")
	}
	return nil
}

// record appends the outcome to history; failures are only logged.
func (o *Orchestrator) record(outcome domain.Outcome) {
	if o.History == nil {
		return
	}
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	err := o.History.Save(domain.HistoryRecord{
		Timestamp:  now(),
		Action:     outcome.Action,
		Scope:      outcome.Plan.Scope,
		State:      outcome.State,
		BinaryPath: outcome.Layout.BinaryPath,
		DataDir:    outcome.Layout.DataDir,
		Warnings:   len(outcome.Warnings),
	})
	if err != nil {
		o.Logger.Warn("history not recorded", map[string]interface{}{"error": err.Error()})
	}
}
