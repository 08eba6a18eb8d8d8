package steps

import (
	"context"
	"fmt"
	"io"

	"github.com/tessellate-ai/boardstrap/internal/config"
	"github.com/tessellate-ai/boardstrap/internal/messages"
	"github.com/tessellate-ai/boardstrap/internal/version"
)

// deps bundles what every concrete step needs: the resolved settings, the
// command executor, and a writer for progress lines.
type deps struct {
	settings config.Settings
	cmdr     Commander
	out      io.Writer
}

func (d deps) say(format string, args ...any) {
	_, _ = fmt.Fprintf(d.out, messages.StepActionFmt, fmt.Sprintf(format, args...))
}

// List returns the fixed installation sequence in execution order.
func List(settings config.Settings, cmdr Commander, out io.Writer) []Step {
	d := deps{settings: settings, cmdr: cmdr, out: out}
	return []Step{
		systemUpdateStep{d},
		dockerStep{d},
		composeStep{d},
		nodeStep{d},
		agentCLIStep{d},
		sdkStep{d},
	}
}

// systemUpdateStep refreshes the package index and installs the base
// utilities every later step shells out to.
type systemUpdateStep struct{ deps }

func (systemUpdateStep) Name() string { return messages.StepNameSystemUpdate }

var essentialCommands = []string{"curl", "wget", "git", "gpg"}

func (s systemUpdateStep) Probe(_ context.Context) (bool, string, error) {
	for _, name := range essentialCommands {
		if _, err := s.cmdr.LookPath(name); err != nil {
			return false, "", nil
		}
	}
	return true, messages.StepEssentialsSatisfied, nil
}

func (s systemUpdateStep) Install(ctx context.Context) error {
	s.say(messages.StepEssentialsInstalling)
	if err := s.cmdr.Run(ctx, "apt-get", "update", "-y", "-qq"); err != nil {
		return err
	}
	if err := s.cmdr.Run(ctx, "apt-get", "upgrade", "-y", "-qq"); err != nil {
		return err
	}
	return s.cmdr.Run(ctx, "apt-get", "install", "-y", "-qq",
		"curl", "wget", "git", "ca-certificates", "gnupg", "lsb-release")
}

// dockerStep installs the container runtime via the vendor's convenience
// script, then enables the service and grants the workspace owner access.
type dockerStep struct{ deps }

func (dockerStep) Name() string { return messages.StepNameDocker }

func (s dockerStep) Probe(ctx context.Context) (bool, string, error) {
	if _, err := s.cmdr.LookPath("docker"); err != nil {
		return false, "", nil
	}
	ver, err := s.cmdr.Output(ctx, "docker", "--version")
	if err != nil {
		// Binary present but not answering; reinstall.
		return false, "", nil
	}
	return true, fmt.Sprintf(messages.StepDockerSatisfiedFmt, ver), nil
}

func (s dockerStep) Install(ctx context.Context) error {
	const script = "/tmp/get-docker.sh"
	s.say(messages.StepDockerDownloading)
	if err := s.cmdr.Run(ctx, "curl", "-fsSL", s.settings.DockerInstallURL, "-o", script); err != nil {
		return err
	}
	s.say(messages.StepDockerInstalling)
	if err := s.cmdr.Run(ctx, "sh", script); err != nil {
		return err
	}
	if _, err := s.cmdr.LookPath("docker"); err != nil {
		return fmt.Errorf(messages.StepDockerMissingAfter)
	}
	s.say(messages.StepDockerEnabling)
	if err := s.cmdr.Run(ctx, "systemctl", "enable", "docker"); err != nil {
		return err
	}
	if err := s.cmdr.Run(ctx, "systemctl", "start", "docker"); err != nil {
		return err
	}
	s.say(messages.StepDockerGroupFmt, s.settings.User.Name)
	return s.cmdr.Run(ctx, "usermod", "-aG", "docker", s.settings.User.Name)
}

// composeStep installs the compose plugin from the distribution repository.
type composeStep struct{ deps }

func (composeStep) Name() string { return messages.StepNameCompose }

func (s composeStep) Probe(ctx context.Context) (bool, string, error) {
	ver, err := s.cmdr.Output(ctx, "docker", "compose", "version")
	if err != nil {
		return false, "", nil
	}
	return true, fmt.Sprintf(messages.StepComposeSatisfiedFmt, ver), nil
}

func (s composeStep) Install(ctx context.Context) error {
	s.say(messages.StepComposeInstalling)
	return s.cmdr.Run(ctx, "apt-get", "install", "-y", "-qq", "docker-compose-plugin")
}

// nodeStep ensures Node.js at or above the configured major version,
// replacing distribution packages with the NodeSource build when needed.
type nodeStep struct{ deps }

func (nodeStep) Name() string { return messages.StepNameNode }

func (s nodeStep) Probe(ctx context.Context) (bool, string, error) {
	if _, err := s.cmdr.LookPath("node"); err != nil {
		return false, "", nil
	}
	raw, err := s.cmdr.Output(ctx, "node", "--version")
	if err != nil {
		return false, "", nil
	}
	major, err := version.Major(raw)
	if err != nil {
		return false, "", fmt.Errorf(messages.StepNodeVersionUnreadableFmt, raw, err)
	}
	if major < s.settings.NodeMajorMin {
		s.say(messages.StepNodeTooOldFmt, raw, s.settings.NodeMajorMin)
		return false, "", nil
	}
	normalized, _ := version.Normalize(raw)
	return true, fmt.Sprintf(messages.StepNodeSatisfiedFmt, normalized), nil
}

func (s nodeStep) Install(ctx context.Context) error {
	const script = "/tmp/nodesource-setup.sh"
	if _, err := s.cmdr.LookPath("node"); err == nil {
		s.say(messages.StepNodeRemovingOld)
		if err := s.cmdr.Run(ctx, "apt-get", "remove", "-y", "-qq", "nodejs"); err != nil {
			return err
		}
	}
	s.say(messages.StepNodeAddingRepo)
	if err := s.cmdr.Run(ctx, "curl", "-fsSL", s.settings.NodeSetupURL, "-o", script); err != nil {
		return err
	}
	if err := s.cmdr.Run(ctx, "bash", script); err != nil {
		return err
	}
	s.say(messages.StepNodeInstalling)
	return s.cmdr.Run(ctx, "apt-get", "install", "-y", "-qq", "nodejs")
}

// agentCLIStep installs the agent CLI globally via npm.
type agentCLIStep struct{ deps }

func (agentCLIStep) Name() string { return messages.StepNameAgentCLI }

func (s agentCLIStep) Probe(_ context.Context) (bool, string, error) {
	if _, err := s.cmdr.LookPath(s.settings.AgentCLIBinary); err != nil {
		return false, "", nil
	}
	return true, fmt.Sprintf(messages.StepAgentCLISatisfiedFmt, s.settings.AgentCLIBinary), nil
}

func (s agentCLIStep) Install(ctx context.Context) error {
	s.say(messages.StepAgentCLIInstallingFmt, s.settings.AgentCLIPackage)
	return s.cmdr.Run(ctx, "npm", "install", "-g", s.settings.AgentCLIPackage, "--loglevel=warn")
}

// sdkStep installs the Python SDK for the workspace owner, not for root.
type sdkStep struct{ deps }

func (sdkStep) Name() string { return messages.StepNamePythonSDK }

func (s sdkStep) Probe(ctx context.Context) (bool, string, error) {
	if _, err := s.cmdr.LookPath("pip3"); err != nil {
		return false, "", nil
	}
	user := s.settings.User.Name
	if _, err := s.cmdr.Output(ctx, "sudo", "-u", user, "pip3", "show", s.settings.SDKPackage); err != nil {
		return false, "", nil
	}
	return true, fmt.Sprintf(messages.StepSDKSatisfiedFmt, s.settings.SDKPackage, user), nil
}

func (s sdkStep) Install(ctx context.Context) error {
	s.say(messages.StepSDKEnsuringPip)
	if err := s.cmdr.Run(ctx, "apt-get", "install", "-y", "-qq", "python3-pip", "python3-venv"); err != nil {
		return err
	}
	user := s.settings.User.Name
	s.say(messages.StepSDKInstallingFmt, s.settings.SDKPackage, user)
	// Debian's externally-managed pip needs --break-system-packages; older
	// releases reject the flag, so fall back to the plain form.
	err := s.cmdr.Run(ctx, "sudo", "-u", user, "pip3", "install", "--user",
		"--break-system-packages", s.settings.SDKPackage)
	if err == nil {
		return nil
	}
	return s.cmdr.Run(ctx, "sudo", "-u", user, "pip3", "install", "--user", s.settings.SDKPackage)
}
