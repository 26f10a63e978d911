package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"boj-notion/internal/app"
	"boj-notion/internal/config"
	"boj-notion/internal/di"
	"boj-notion/internal/domain/model"
)

type rootFlags struct {
	verbose   bool
	ephemeral bool
	settings  string
	ledger    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "bojnotion",
		Short:         "Save accepted BOJ submissions to Notion",
		Long:          "Watches the BOJ status page and turns every accepted submission into a Notion page with a Gemini explanation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "keep the processed ledger in memory only")
	pf.StringVar(&flags.settings, "settings", "", "path of the YAML settings file")
	pf.StringVar(&flags.ledger, "ledger", "", "path of the SQLite ledger")

	root.AddCommand(
		newWatchCmd(flags),
		newRunCmd(flags),
		newLedgerCmd(flags),
		newSettingsCmd(flags),
	)
	return root
}

func newWatchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the status page and process accepted submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, flags)
		},
	}
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "run <submission-id> <problem-id>",
		Short: "Process one submission immediately",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := initApp(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			sub := model.Submission{
				ID:        strings.TrimSpace(args[0]),
				ProblemID: strings.TrimSpace(args[1]),
				Language:  language,
				Verdict:   model.AcceptedMarker,
			}
			result, err := application.RunOnce(cmd.Context(), sub)
			if err != nil {
				return err
			}
			if !result.Success {
				return errors.New(result.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "submission language as shown on the status page")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}

func newLedgerCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect or reset the processed submission ledger",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print processed submission ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, cleanup, err := initApp(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			ids, err := application.ListLedger(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "reset",
		Short: "Forget every processed submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, cleanup, err := initApp(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := application.ResetLedger(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ledger cleared")
			return nil
		},
	})
	return cmd
}

func newSettingsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Work with the API key settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report settings that still need a value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, cleanup, err := initApp(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			missing := application.MissingSettings()
			if len(missing) > 0 {
				return fmt.Errorf("missing settings: %s", strings.Join(missing, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings ok")
			return nil
		},
	})
	return cmd
}

func runWatch(cmd *cobra.Command, flags *rootFlags) error {
	application, cleanup, err := initApp(flags)
	if err != nil {
		return err
	}
	defer cleanup()
	return application.Watch(cmd.Context())
}

func initApp(flags *rootFlags) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	flags.apply(cfg)

	application, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize application: %w", err)
	}
	return application, cleanup, nil
}

func (f *rootFlags) apply(cfg *config.Config) {
	if f.verbose {
		cfg.Verbose = true
	}
	if f.ephemeral {
		cfg.Ephemeral = true
	}
	if f.settings != "" {
		cfg.SettingsPath = f.settings
	}
	if f.ledger != "" {
		cfg.LedgerPath = f.ledger
	}
}
