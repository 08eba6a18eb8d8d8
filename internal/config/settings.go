// Package config defines the settings that drive the provisioning pipeline.
// Every component receives a Settings value explicitly; nothing reads ambient
// process state at run time.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/tessellate-ai/boardstrap/internal/messages"
)

// DefaultPath is the optional system-wide settings file consulted when no
// --config flag is given.
const DefaultPath = "/etc/boardstrap.toml"

// Settings holds every tunable of the pipeline. The zero value is not usable;
// start from Default().
type Settings struct {
	// WorkspaceDir is the directory the scaffolder populates. Relative paths
	// are resolved against the invoking user's home directory.
	WorkspaceDir string `toml:"workspace_dir"`

	// DiskFloorGB is the minimum free disk space; preflight fails below it.
	DiskFloorGB int `toml:"disk_floor_gb"`

	// MemoryWarnMB is the threshold below which preflight warns about RAM.
	MemoryWarnMB int `toml:"memory_warn_mb"`

	// ProbeAddress is the host:port dialed to verify network reachability.
	ProbeAddress string `toml:"probe_address"`

	// ProbeTimeoutSeconds bounds the reachability probe.
	ProbeTimeoutSeconds int `toml:"probe_timeout_seconds"`

	// NodeMajorMin is the minimum acceptable Node.js major version.
	NodeMajorMin int `toml:"node_major_min"`

	// NodeSetupURL is the NodeSource setup script fetched when Node.js needs
	// to be installed or upgraded.
	NodeSetupURL string `toml:"node_setup_url"`

	// DockerInstallURL is the Docker convenience install script endpoint.
	DockerInstallURL string `toml:"docker_install_url"`

	// AgentCLIPackage is the npm package that provides the agent CLI.
	AgentCLIPackage string `toml:"agent_cli_package"`

	// AgentCLIBinary is the executable name the CLI package installs.
	AgentCLIBinary string `toml:"agent_cli_binary"`

	// SDKPackage is the pip package that provides the Python SDK.
	SDKPackage string `toml:"sdk_package"`

	// SecretEnvVar is the environment variable name that carries the API key.
	SecretEnvVar string `toml:"secret_env_var"`

	// SecretPlaceholder is the literal written into the scaffolded env file
	// until a real key is supplied.
	SecretPlaceholder string `toml:"secret_placeholder"`

	// ShellProfile is the profile filename (relative to the user's home)
	// that receives the guarded export line.
	ShellProfile string `toml:"shell_profile"`

	// User is the account the workspace belongs to. Populated by
	// ResolveUser, not by the settings file.
	User Account `toml:"-"`
}

// Default returns the compiled-in settings.
func Default() Settings {
	return Settings{
		WorkspaceDir:        "agent-workspace",
		DiskFloorGB:         4,
		MemoryWarnMB:        2048,
		ProbeAddress:        "deb.debian.org:443",
		ProbeTimeoutSeconds: 3,
		NodeMajorMin:        18,
		NodeSetupURL:        "https://deb.nodesource.com/setup_20.x",
		DockerInstallURL:    "https://get.docker.com",
		AgentCLIPackage:     "@tessellate-ai/tessel-cli",
		AgentCLIBinary:      "tessel",
		SDKPackage:          "tessellate",
		SecretEnvVar:        "TESSEL_API_KEY",
		SecretPlaceholder:   "your-api-key-here",
		ShellProfile:        ".bashrc",
	}
}

// Load reads a settings file and overlays it on the defaults. A missing file
// at the default path is not an error; a missing file at an explicit path is.
func Load(path string, explicit bool) (Settings, error) {
	settings := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return settings, nil
		}
		return Settings{}, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf(messages.ConfigParseFailedFmt, path, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate rejects settings that would make the pipeline misbehave silently.
func (s Settings) Validate() error {
	if s.WorkspaceDir == "" {
		return fmt.Errorf(messages.ConfigInvalidFmt, messages.ConfigWorkspaceInvalid)
	}
	if s.DiskFloorGB <= 0 {
		return fmt.Errorf(messages.ConfigInvalidFmt, messages.ConfigDiskFloorInvalid)
	}
	if s.MemoryWarnMB <= 0 {
		return fmt.Errorf(messages.ConfigInvalidFmt, messages.ConfigMemoryWarnInvalid)
	}
	if _, _, err := net.SplitHostPort(s.ProbeAddress); err != nil {
		return fmt.Errorf(messages.ConfigInvalidFmt, messages.ConfigProbeAddrInvalid)
	}
	if s.NodeMajorMin <= 0 {
		return fmt.Errorf(messages.ConfigInvalidFmt, messages.ConfigNodeMajorInvalid)
	}
	return nil
}

// WorkspacePath resolves the workspace directory against the owning user's
// home directory when it is not absolute.
func (s Settings) WorkspacePath() string {
	if filepath.IsAbs(s.WorkspaceDir) {
		return s.WorkspaceDir
	}
	return filepath.Join(s.User.Home, s.WorkspaceDir)
}

// ShellProfilePath returns the absolute path of the user's shell profile.
func (s Settings) ShellProfilePath() string {
	if filepath.IsAbs(s.ShellProfile) {
		return s.ShellProfile
	}
	return filepath.Join(s.User.Home, s.ShellProfile)
}
