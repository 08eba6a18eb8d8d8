package messages

// CLI messages for the root command and shared helpers.
const (
	RootUse   = "boardstrap"
	RootShort = "Provision a single-board computer into an agent development workstation"
	RootLong  = "boardstrap verifies the host, installs the container runtime, Node.js,\n" +
		"the Tessellate agent CLI and Python SDK, scaffolds a workspace, and\n" +
		"captures the API key."

	VersionTemplate = "{{.Version}}\n"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"

	SetupUse   = "setup"
	SetupShort = "Run the full provisioning pipeline (requires root)"

	SetupFlagConfig     = "config"
	SetupFlagConfigDesc = "path to a settings file (TOML)"
	SetupFlagWorkspace     = "workspace"
	SetupFlagWorkspaceDesc = "override the workspace directory"
	SetupFlagSkipSecret     = "skip-secret"
	SetupFlagSkipSecretDesc = "do not prompt for an API key"
	SetupFlagReport     = "report"
	SetupFlagReportDesc = "write a JSON run report into the workspace"

	SetupBanner          = "boardstrap — single-board agent workstation setup"
	SetupPreflightHeader = "Preflight checks"
	SetupStepsHeaderFmt  = "Installing (%d steps)"
	SetupScaffoldHeader  = "Workspace files"

	DoctorUse   = "doctor"
	DoctorShort = "Check the host and installed tools without changing anything"

	DoctorHeaderFmt      = "Inspecting host (read-only)\n"
	DoctorStepNotInstalled          = "not installed"
	DoctorStepNotInstalledRecommend = "Run `sudo boardstrap setup` to install it."
	DoctorFailureSummary = "Some checks failed. Fix the issues above and re-run `boardstrap setup`."
	DoctorSuccessSummary = "All checks passed."
	DoctorFailureError   = "doctor found failing checks"

	StatusOKLabel   = "[ OK ]"
	StatusWarnLabel = "[WARN]"
	StatusFailLabel = "[FAIL]"

	ResultLineFmt         = "%s %-12s %s\n"
	RecommendationPrefix  = "       ↳ "
	RecommendationIndent  = "         "

	SummaryHeader       = "Setup complete"
	SummaryToolLineFmt  = "  %-16s %s\n"
	SummaryToolMissing  = "not found"
	SummaryWorkspaceFmt = "  workspace:       %s\n"
	SummaryNextSteps    = "Next: log out and back in (or run `newgrp docker`), then run start-agent.sh."
	SummaryReportFmt    = "  run report:      %s\n"
)
