package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tessellate-ai/boardstrap/internal/messages"
	"github.com/tessellate-ai/boardstrap/internal/preflight"
	"github.com/tessellate-ai/boardstrap/internal/steps"
)

func newDoctorCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(configPath, "")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.DoctorHeaderFmt)

			_, results := preflight.Run(ctx, settings, newCollector())
			hasFail := false
			for _, r := range results {
				// Doctor is read-only and may run unprivileged; missing root
				// is advisory here, setup enforces it.
				if r.CheckName == messages.PreflightCheckNamePrivilege && r.Status == preflight.StatusFail {
					r.Status = preflight.StatusWarn
					r.Recommendation = ""
				}
				if r.Status == preflight.StatusFail {
					hasFail = true
				}
				printResult(out, r)
			}

			cmdr := newCommander()
			for _, step := range steps.List(settings, cmdr, io.Discard) {
				printResult(out, probeResult(cmd, step))
			}

			_, _ = fmt.Fprintln(out)
			if hasFail {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return fmt.Errorf(messages.DoctorFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, messages.SetupFlagConfig, "", messages.SetupFlagConfigDesc)
	return cmd
}

// probeResult maps a step probe to a check result: satisfied is OK, missing
// is a warning because `setup` will install it.
func probeResult(cmd *cobra.Command, step steps.Step) preflight.Result {
	satisfied, detail, err := step.Probe(cmd.Context())
	switch {
	case err != nil:
		return preflight.Result{
			Status:    preflight.StatusWarn,
			CheckName: step.Name(),
			Message:   err.Error(),
		}
	case satisfied:
		return preflight.Result{
			Status:    preflight.StatusOK,
			CheckName: step.Name(),
			Message:   detail,
		}
	default:
		return preflight.Result{
			Status:         preflight.StatusWarn,
			CheckName:      step.Name(),
			Message:        messages.DoctorStepNotInstalled,
			Recommendation: messages.DoctorStepNotInstalledRecommend,
		}
	}
}
