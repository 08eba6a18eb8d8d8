package messages

// Step runner messages for the installation sequence.
const (
	StepNameSystemUpdate = "system-update"
	StepNameDocker       = "docker"
	StepNameCompose      = "docker-compose"
	StepNameNode         = "nodejs"
	StepNameAgentCLI     = "agent-cli"
	StepNamePythonSDK    = "python-sdk"

	StepRunningFmt   = "[%d/%d] %s\n"
	StepSkippedFmt   = "  already satisfied: %s\n"
	StepPerformedFmt = "  installed: %s\n"
	StepActionFmt    = "  -> %s\n"

	StepFailedFmt      = "step %s failed: %w"
	StepProbeFailedFmt = "probing %s: %w"

	StepCommandFailedFmt = "command %q failed: %w"

	StepEssentialsSatisfied  = "curl, git, and CA certificates present"
	StepEssentialsInstalling = "updating package index and installing essentials"

	StepDockerSatisfiedFmt  = "docker present (%s)"
	StepDockerDownloading   = "downloading the Docker install script"
	StepDockerInstalling    = "running the Docker installer"
	StepDockerEnabling      = "enabling and starting the docker service"
	StepDockerGroupFmt      = "adding %q to the docker group"
	StepDockerMissingAfter  = "docker not on PATH after install"

	StepComposeSatisfiedFmt = "compose plugin present (%s)"
	StepComposeInstalling   = "installing the docker compose plugin"

	StepNodeSatisfiedFmt   = "node v%s present"
	StepNodeTooOldFmt      = "node v%s is older than v%d, reinstalling"
	StepNodeRemovingOld    = "removing the outdated Node.js package"
	StepNodeAddingRepo     = "adding the NodeSource repository"
	StepNodeInstalling     = "installing Node.js"
	StepNodeVersionUnreadableFmt = "could not parse node version %q: %w"

	StepAgentCLISatisfiedFmt = "%s on PATH"
	StepAgentCLIInstallingFmt = "installing %s via npm"

	StepSDKSatisfiedFmt   = "%s importable for %s"
	StepSDKEnsuringPip    = "ensuring pip and venv are available"
	StepSDKInstallingFmt  = "installing %s for %s"
)
