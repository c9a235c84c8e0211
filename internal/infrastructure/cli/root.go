package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/axiom-install/internal/app"
	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	// Build replaces app.BuildContainer.
	Build func(context.Context, app.Options) (*app.Container, error)
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	uninstall  bool
	source     string
	scope      string
	configPath string
	noAlias    bool
	yes        bool
	verbose    bool
}

// session builds containers on demand so flags can shape them.
type session struct {
	opts  Options
	flags *rootFlags
}

func (s *session) container(cmd *cobra.Command) (*app.Container, error) {
	return s.build(cmd, false)
}

// inspect builds a container that leaves the host untouched.
func (s *session) inspect(cmd *cobra.Command) (*app.Container, error) {
	return s.build(cmd, true)
}

func (s *session) build(cmd *cobra.Command, readOnly bool) (*app.Container, error) {
	if s.flags.scope != "" {
		if _, err := domain.ParseScopePreference(s.flags.scope); err != nil {
			return nil, err
		}
	}
	build := s.opts.Build
	if build == nil {
		build = app.BuildContainer
	}
	return build(cmd.Context(), app.Options{
		ConfigPath: s.flags.configPath,
		SourceDir:  s.flags.source,
		Scope:      s.flags.scope,
		NoAlias:    s.flags.noAlias,
		Verbose:    s.opts.Verbose || s.flags.verbose,
		ReadOnly:   readOnly,
		Prompter:   NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), s.flags.yes),
		Progress:   NewSpinner(cmd.ErrOrStderr(), "Installing interpreter packages"),
	})
}

// NewRootCmd wires the cobra root command. Without a subcommand it installs,
// or uninstalls with --uninstall.
func NewRootCmd(opts Options) *cobra.Command {
	flags := &rootFlags{}
	s := &session{opts: opts, flags: flags}

	root := &cobra.Command{
		Use:     "axiom-install",
		Short:   "Install the " + domain.DisplayName,
		Long:    "axiom-install validates the host, deploys the axiom editor, and puts it on your PATH.",
		Version: version.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.uninstall {
				return runUninstall(cmd, s)
			}
			return runInstall(cmd, s)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("axiom-install {{.Version}}\n")

	root.Flags().BoolVar(&flags.uninstall, "uninstall", false, "Remove a previous installation")
	pf := root.PersistentFlags()
	pf.StringVar(&flags.source, "source", "", "Directory holding axiom.py and editor/ (default: current directory)")
	pf.StringVar(&flags.scope, "scope", "", "Install scope: auto, system or user")
	pf.StringVar(&flags.configPath, "config", "", "Installer settings file (default ~/.config/axiom-install/config.yaml)")
	pf.BoolVar(&flags.noAlias, "no-alias", false, "Do not register the shell alias")
	pf.BoolVarP(&flags.yes, "yes", "y", false, "Answer yes to every confirmation")
	pf.BoolVar(&flags.verbose, "verbose", false, "Enable debug logging")

	root.AddCommand(
		newInstallCommand(s),
		newUninstallCommand(s),
		newDoctorCommand(s),
		newHistoryCommand(s),
		newConfigCommand(s),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show axiom-install version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			displayVersionInformation(cmd.OutOrStdout())
			return nil
		},
	}
}

func displayVersionInformation(out io.Writer) {
	fmt.Fprintf(out, "axiom-install version %s\n", version.Version)
	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
	}
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
}
