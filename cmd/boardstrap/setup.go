package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tessellate-ai/boardstrap/internal/config"
	"github.com/tessellate-ai/boardstrap/internal/messages"
	"github.com/tessellate-ai/boardstrap/internal/preflight"
	"github.com/tessellate-ai/boardstrap/internal/prompt"
	"github.com/tessellate-ai/boardstrap/internal/report"
	"github.com/tessellate-ai/boardstrap/internal/scaffold"
	"github.com/tessellate-ai/boardstrap/internal/secret"
	"github.com/tessellate-ai/boardstrap/internal/steps"
	"github.com/tessellate-ai/boardstrap/internal/terminal"
)

// Seams for tests; production values touch the live host.
var (
	newCollector = func() preflight.Collector { return preflight.RealCollector{} }
	newCommander = func() steps.Commander { return steps.RealCommander{} }
	resolveUser  = config.ResolveUser
	isTerminal   = terminal.IsInteractive
)

func newSetupCmd() *cobra.Command {
	var configPath string
	var workspaceDir string
	var skipSecret bool
	var writeReport bool

	cmd := &cobra.Command{
		Use:   messages.SetupUse,
		Short: messages.SetupShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(configPath, workspaceDir)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, color.CyanString(messages.SetupBanner))
			_, _ = fmt.Fprintln(out)

			// Preflight: any failure aborts before a single mutation.
			_, _ = fmt.Fprintln(out, messages.SetupPreflightHeader)
			profile, results := preflight.Run(ctx, settings, newCollector())
			for _, r := range results {
				printResult(out, r)
			}
			_, _ = fmt.Fprintln(out)
			if preflight.HasFailure(results) {
				return fmt.Errorf(messages.PreflightAbort)
			}

			run := report.New(profile)

			cmdr := newCommander()
			stepList := steps.List(settings, cmdr, out)
			_, _ = fmt.Fprintf(out, messages.SetupStepsHeaderFmt+"\n", len(stepList))
			stepResults, err := steps.Runner{Out: out}.Run(ctx, stepList)
			if err != nil {
				// Fail fast: completed steps stay installed, nothing is
				// rolled back, and a re-run resumes via the probes.
				return err
			}

			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, messages.SetupScaffoldHeader)
			if err := scaffold.Run(scaffold.RealSystem{}, settings, out); err != nil {
				return err
			}

			if !skipSecret {
				key, err := captureSecret(cmd)
				if err != nil {
					return err
				}
				if err := secret.Apply(secret.RealSystem{}, settings, key, out); err != nil {
					return err
				}
			}

			run.Finish(stepResults, true)
			reportPath := ""
			if writeReport {
				reportPath = filepath.Join(settings.WorkspacePath(), report.FileName)
				if err := run.Write(scaffold.RealSystem{}, reportPath); err != nil {
					return err
				}
			}

			versions := probeToolVersions(ctx, cmdr, settings)
			printSummary(out, versions, settings.WorkspacePath(), reportPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, messages.SetupFlagConfig, "", messages.SetupFlagConfigDesc)
	cmd.Flags().StringVar(&workspaceDir, messages.SetupFlagWorkspace, "", messages.SetupFlagWorkspaceDesc)
	cmd.Flags().BoolVar(&skipSecret, messages.SetupFlagSkipSecret, false, messages.SetupFlagSkipSecretDesc)
	cmd.Flags().BoolVar(&writeReport, messages.SetupFlagReport, false, messages.SetupFlagReportDesc)
	return cmd
}

// loadSettings builds the explicit configuration threaded through the
// pipeline: defaults, optional TOML overlay, flag overrides, owner account.
func loadSettings(configPath string, workspaceDir string) (config.Settings, error) {
	path := configPath
	explicit := configPath != ""
	if !explicit {
		path = config.DefaultPath
	}
	settings, err := config.Load(path, explicit)
	if err != nil {
		return config.Settings{}, err
	}
	if workspaceDir != "" {
		settings.WorkspaceDir = workspaceDir
	}
	account, err := resolveUser()
	if err != nil {
		return config.Settings{}, err
	}
	settings.User = account
	return settings, nil
}

// captureSecret picks the masked form on a terminal and a plain line read
// otherwise, so piped invocations can still supply a key.
func captureSecret(cmd *cobra.Command) (string, error) {
	var ui prompt.UI
	if isTerminal() {
		ui = prompt.NewHuhUI()
	} else {
		ui = prompt.ReaderUI{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	}
	return secret.Capture(ui)
}
