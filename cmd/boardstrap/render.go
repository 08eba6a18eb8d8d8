package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tessellate-ai/boardstrap/internal/config"
	"github.com/tessellate-ai/boardstrap/internal/messages"
	"github.com/tessellate-ai/boardstrap/internal/preflight"
	"github.com/tessellate-ai/boardstrap/internal/steps"
)

func printResult(out io.Writer, r preflight.Result) {
	var status string
	switch r.Status {
	case preflight.StatusOK:
		status = color.GreenString(messages.StatusOKLabel)
	case preflight.StatusWarn:
		status = color.YellowString(messages.StatusWarnLabel)
	case preflight.StatusFail:
		status = color.RedString(messages.StatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.ResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	lines := strings.Split(recommendation, "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.RecommendationPrefix, line)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.RecommendationIndent, line)
	}
}

type toolVersion struct {
	name    string
	version string
}

// probeToolVersions collects the installed tool versions for the summary.
// Probe failures render as "not found" rather than aborting a finished run.
func probeToolVersions(ctx context.Context, cmdr steps.Commander, settings config.Settings) []toolVersion {
	probes := []struct {
		name string
		args []string
	}{
		{"docker", []string{"docker", "--version"}},
		{"docker compose", []string{"docker", "compose", "version"}},
		{"node", []string{"node", "--version"}},
		{"npm", []string{"npm", "--version"}},
		{settings.AgentCLIBinary, []string{settings.AgentCLIBinary, "--version"}},
	}

	out := make([]toolVersion, 0, len(probes))
	for _, p := range probes {
		ver, err := cmdr.Output(ctx, p.args[0], p.args[1:]...)
		if err != nil {
			out = append(out, toolVersion{p.name, messages.SummaryToolMissing})
			continue
		}
		if idx := strings.IndexByte(ver, '\n'); idx >= 0 {
			ver = ver[:idx]
		}
		out = append(out, toolVersion{p.name, ver})
	}
	return out
}

func printSummary(out io.Writer, versions []toolVersion, workspace string, reportPath string) {
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, color.GreenString(messages.SummaryHeader))
	for _, tv := range versions {
		_, _ = fmt.Fprintf(out, messages.SummaryToolLineFmt, tv.name, tv.version)
	}
	_, _ = fmt.Fprintf(out, messages.SummaryWorkspaceFmt, workspace)
	if reportPath != "" {
		_, _ = fmt.Fprintf(out, messages.SummaryReportFmt, reportPath)
	}
	_, _ = fmt.Fprintln(out, messages.SummaryNextSteps)
}
