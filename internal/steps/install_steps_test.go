package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellate-ai/boardstrap/internal/config"
	"github.com/tessellate-ai/boardstrap/internal/messages"
)

// fakeCommander resolves probes from canned tables and records every Run call.
type fakeCommander struct {
	// onPath lists executables LookPath resolves.
	onPath []string
	// outputs maps a joined command line to its stdout.
	outputs map[string]string
	// runErr maps a joined command line to a forced failure.
	runErr map[string]error
	calls  []string
}

func (f *fakeCommander) Run(_ context.Context, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, line)
	if err, ok := f.runErr[line]; ok {
		return err
	}
	return nil
}

func (f *fakeCommander) Output(_ context.Context, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	if out, ok := f.outputs[line]; ok {
		return out, nil
	}
	return "", fmt.Errorf("command not scripted: %s", line)
}

func (f *fakeCommander) LookPath(name string) (string, error) {
	for _, p := range f.onPath {
		if p == name {
			return "/usr/bin/" + name, nil
		}
	}
	return "", errors.New("executable file not found in $PATH")
}

func testSettings() config.Settings {
	settings := config.Default()
	settings.User = config.Account{Name: "pi", Home: "/home/pi", UID: 1000, GID: 1000}
	return settings
}

// provisionedCommander models a host where every step's end-state holds.
func provisionedCommander(settings config.Settings) *fakeCommander {
	return &fakeCommander{
		onPath: []string{"curl", "wget", "git", "gpg", "docker", "node", "pip3", settings.AgentCLIBinary},
		outputs: map[string]string{
			"docker --version":       "Docker version 27.1.1, build 1234567",
			"docker compose version": "Docker Compose version v2.29.1",
			"node --version":         "v20.11.1",
			"sudo -u pi pip3 show " + settings.SDKPackage: "Name: " + settings.SDKPackage,
		},
	}
}

func TestList_Order(t *testing.T) {
	settings := testSettings()
	list := List(settings, &fakeCommander{}, &bytes.Buffer{})

	require.Len(t, list, 6)
	var names []string
	for _, s := range list {
		names = append(names, s.Name())
	}
	// Docker before compose, Node before the CLI.
	assert.Less(t, indexOf(names, messages.StepNameDocker), indexOf(names, messages.StepNameCompose))
	assert.Less(t, indexOf(names, messages.StepNameNode), indexOf(names, messages.StepNameAgentCLI))
}

func indexOf(list []string, want string) int {
	for i, s := range list {
		if s == want {
			return i
		}
	}
	return -1
}

func TestRun_ProvisionedHostPerformsNothing(t *testing.T) {
	settings := testSettings()
	cmdr := provisionedCommander(settings)

	var out bytes.Buffer
	results, err := Runner{Out: &out}.Run(context.Background(),
		List(settings, cmdr, &out))

	require.NoError(t, err)
	assert.Equal(t, 0, Performed(results))
	assert.Empty(t, cmdr.calls, "no install command may run when all probes are satisfied")
	for _, r := range results {
		assert.Equal(t, OutcomeSkipped, r.Outcome, r.Name)
	}
}

func TestSystemUpdateStep_InstallsEssentialsWhenMissing(t *testing.T) {
	settings := testSettings()
	cmdr := provisionedCommander(settings)
	cmdr.onPath = remove(cmdr.onPath, "gpg")

	var out bytes.Buffer
	results, err := Runner{Out: &out}.Run(context.Background(),
		List(settings, cmdr, &out))

	require.NoError(t, err)
	assert.Equal(t, 1, Performed(results))
	assert.Contains(t, cmdr.calls, "apt-get update -y -qq")
	assert.Contains(t, cmdr.calls, "apt-get upgrade -y -qq")
}

func remove(list []string, name string) []string {
	var kept []string
	for _, s := range list {
		if s != name {
			kept = append(kept, s)
		}
	}
	return kept
}

func TestDockerStep_InstallRunsConvenienceScript(t *testing.T) {
	settings := testSettings()
	cmdr := provisionedCommander(settings)
	cmdr.onPath = remove(cmdr.onPath, "docker")
	step := dockerStep{deps{settings: settings, cmdr: cmdr, out: &bytes.Buffer{}}}

	satisfied, _, err := step.Probe(context.Background())
	require.NoError(t, err)
	require.False(t, satisfied)

	// The post-install verification needs docker back on PATH; the fake
	// script run puts it there.
	cmdr.runErr = map[string]error{}
	cmdr.onPath = append(cmdr.onPath, "docker")
	require.NoError(t, step.Install(context.Background()))

	assert.Contains(t, cmdr.calls,
		"curl -fsSL "+settings.DockerInstallURL+" -o /tmp/get-docker.sh")
	assert.Contains(t, cmdr.calls, "sh /tmp/get-docker.sh")
	assert.Contains(t, cmdr.calls, "systemctl enable docker")
	assert.Contains(t, cmdr.calls, "systemctl start docker")
	assert.Contains(t, cmdr.calls, "usermod -aG docker pi")
}

func TestDockerStep_InstallFailsWhenBinaryStillMissing(t *testing.T) {
	settings := testSettings()
	cmdr := &fakeCommander{onPath: []string{"curl"}}
	step := dockerStep{deps{settings: settings, cmdr: cmdr, out: &bytes.Buffer{}}}

	err := step.Install(context.Background())
	require.Error(t, err)
	assert.NotContains(t, cmdr.calls, "systemctl enable docker")
}

func TestNodeStep_OldVersionTriggersReinstall(t *testing.T) {
	settings := testSettings()
	cmdr := provisionedCommander(settings)
	cmdr.outputs["node --version"] = "v16.20.2"
	step := nodeStep{deps{settings: settings, cmdr: cmdr, out: &bytes.Buffer{}}}

	satisfied, _, err := step.Probe(context.Background())
	require.NoError(t, err)
	assert.False(t, satisfied)

	require.NoError(t, step.Install(context.Background()))
	assert.Contains(t, cmdr.calls, "apt-get remove -y -qq nodejs")
	assert.Contains(t, cmdr.calls,
		"curl -fsSL "+settings.NodeSetupURL+" -o /tmp/nodesource-setup.sh")
	assert.Contains(t, cmdr.calls, "apt-get install -y -qq nodejs")
}

func TestNodeStep_CurrentVersionSatisfies(t *testing.T) {
	settings := testSettings()
	cmdr := provisionedCommander(settings)
	step := nodeStep{deps{settings: settings, cmdr: cmdr, out: &bytes.Buffer{}}}

	satisfied, detail, err := step.Probe(context.Background())
	require.NoError(t, err)
	assert.True(t, satisfied)
	assert.Contains(t, detail, "20.11.1")
}

func TestNodeStep_UnparseableVersionIsProbeError(t *testing.T) {
	settings := testSettings()
	cmdr := provisionedCommander(settings)
	cmdr.outputs["node --version"] = "mystery build"
	step := nodeStep{deps{settings: settings, cmdr: cmdr, out: &bytes.Buffer{}}}

	_, _, err := step.Probe(context.Background())
	assert.Error(t, err)
}

func TestNodeStep_InstallSkipsRemovalWhenAbsent(t *testing.T) {
	settings := testSettings()
	cmdr := &fakeCommander{onPath: []string{"curl"}}
	step := nodeStep{deps{settings: settings, cmdr: cmdr, out: &bytes.Buffer{}}}

	require.NoError(t, step.Install(context.Background()))
	assert.NotContains(t, cmdr.calls, "apt-get remove -y -qq nodejs")
}

func TestAgentCLIStep_InstallsGlobalPackage(t *testing.T) {
	settings := testSettings()
	cmdr := &fakeCommander{}
	step := agentCLIStep{deps{settings: settings, cmdr: cmdr, out: &bytes.Buffer{}}}

	satisfied, _, err := step.Probe(context.Background())
	require.NoError(t, err)
	require.False(t, satisfied)

	require.NoError(t, step.Install(context.Background()))
	assert.Contains(t, cmdr.calls,
		"npm install -g "+settings.AgentCLIPackage+" --loglevel=warn")
}

func TestSDKStep_InstallsForWorkspaceOwner(t *testing.T) {
	settings := testSettings()
	cmdr := &fakeCommander{}
	step := sdkStep{deps{settings: settings, cmdr: cmdr, out: &bytes.Buffer{}}}

	require.NoError(t, step.Install(context.Background()))
	assert.Contains(t, cmdr.calls,
		"sudo -u pi pip3 install --user --break-system-packages "+settings.SDKPackage)
}

func TestSDKStep_FallsBackWithoutBreakSystemPackages(t *testing.T) {
	settings := testSettings()
	managed := "sudo -u pi pip3 install --user --break-system-packages " + settings.SDKPackage
	plain := "sudo -u pi pip3 install --user " + settings.SDKPackage
	cmdr := &fakeCommander{
		runErr: map[string]error{managed: errors.New("no such option: --break-system-packages")},
	}
	step := sdkStep{deps{settings: settings, cmdr: cmdr, out: &bytes.Buffer{}}}

	require.NoError(t, step.Install(context.Background()))
	assert.Contains(t, cmdr.calls, managed)
	assert.Contains(t, cmdr.calls, plain)
}
