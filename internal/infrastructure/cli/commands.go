package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/axiom-install/internal/app"
	"github.com/doeshing/axiom-install/internal/application/install"
	"github.com/doeshing/axiom-install/internal/domain"
)

const (
	msgNoHistoryRecorded = "No runs recorded yet."
	msgHistoryCleared    = "History cleared."
	errHistoryDisabled   = "history is disabled (history.enabled: false)"
)

func newInstallCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install axiom (the default action)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, s)
		},
	}
}

func newUninstallCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove axiom, asking before deleting user data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd, s)
		},
	}
}

func runInstall(cmd *cobra.Command, s *session) error {
	container, err := s.container(cmd)
	if err != nil {
		return err
	}
	defer container.Close()

	console := NewConsole(cmd.OutOrStdout())
	console.Title("Installing " + domain.DisplayName)
	outcome := container.Orchestrator.Install(cmd.Context(), install.Options{Payload: container.Payload})
	console.Outcome(outcome)
	return outcomeError(outcome)
}

func runUninstall(cmd *cobra.Command, s *session) error {
	container, err := s.container(cmd)
	if err != nil {
		return err
	}
	defer container.Close()

	console := NewConsole(cmd.OutOrStdout())
	console.Title("Uninstalling " + domain.DisplayName)
	outcome := container.Orchestrator.Uninstall(cmd.Context())
	console.Outcome(outcome)
	return outcomeError(outcome)
}

func newHistoryCommand(s *session) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect previous installer runs",
	}
	historyCmd.AddCommand(
		newHistoryListCommand(s),
		newHistoryClearCommand(s),
		newHistoryExportCommand(s),
	)
	return historyCmd
}

func newHistoryListCommand(s *session) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, s, func(container *app.Container) error {
				records, err := container.HistoryStore.Recent(limit)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), msgNoHistoryRecorded)
					return nil
				}
				NewConsole(cmd.OutOrStdout()).History(records, time.Now())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show (0 for all)")
	return cmd
}

func newHistoryClearCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, s, func(container *app.Container) error {
				if err := container.HistoryStore.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msgHistoryCleared)
				return nil
			})
		},
	}
}

func newHistoryExportCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every run to a JSON-lines file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, s, func(container *app.Container) error {
				if err := container.HistoryStore.ExportJSON(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", args[0])
				return nil
			})
		},
	}
}

func withHistory(cmd *cobra.Command, s *session, fn func(*app.Container) error) error {
	container, err := s.container(cmd)
	if err != nil {
		return err
	}
	defer container.Close()
	if container.HistoryStore == nil {
		return errors.New(errHistoryDisabled)
	}
	return fn(container)
}

func newConfigCommand(s *session) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect installer settings",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				container, err := s.inspect(cmd)
				if err != nil {
					return err
				}
				return writeYAML(cmd.OutOrStdout(), container.Config)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				container, err := s.inspect(cmd)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
				return nil
			},
		},
	)
	return configCmd
}

func writeYAML(out io.Writer, cfg domain.Config) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}
