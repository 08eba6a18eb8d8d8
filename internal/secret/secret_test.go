package secret

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellate-ai/boardstrap/internal/config"
	"github.com/tessellate-ai/boardstrap/internal/envfile"
	"github.com/tessellate-ai/boardstrap/internal/prompt"
	"github.com/tessellate-ai/boardstrap/internal/scaffold"
)

// fakeSystem keeps files in memory; appends go through the same map.
type fakeSystem struct {
	files  map[string][]byte
	chowns map[string][2]int
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{files: map[string][]byte{}, chowns: map[string][2]int{}}
}

func (f *fakeSystem) ReadFile(name string) ([]byte, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (f *fakeSystem) WriteFileAtomic(filename string, data []byte, _ os.FileMode) error {
	f.files[filename] = append([]byte(nil), data...)
	return nil
}

func (f *fakeSystem) AppendFile(filename string, data []byte, _ os.FileMode) error {
	f.files[filename] = append(f.files[filename], data...)
	return nil
}

func (f *fakeSystem) Chown(name string, uid int, gid int) error {
	f.chowns[name] = [2]int{uid, gid}
	return nil
}

func secretSettings() config.Settings {
	settings := config.Default()
	settings.User = config.Account{Name: "pi", Home: "/home/pi", UID: 1000, GID: 1000}
	return settings
}

func envPath(settings config.Settings) string {
	return filepath.Join(settings.WorkspacePath(), scaffold.EnvFileName)
}

func TestApply_ReplacesPlaceholder(t *testing.T) {
	settings := secretSettings()
	sys := newFakeSystem()
	sys.files[envPath(settings)] = []byte(settings.SecretEnvVar + "=" + settings.SecretPlaceholder + "\n")

	var out bytes.Buffer
	require.NoError(t, Apply(sys, settings, "sk-live-1", &out))

	content := string(sys.files[envPath(settings)])
	assert.NotContains(t, content, settings.SecretPlaceholder)

	parsed, err := envfile.Parse(content)
	require.NoError(t, err)
	assert.Equal(t, "sk-live-1", parsed[settings.SecretEnvVar])
	assert.True(t, strings.HasSuffix(content, "\n"))
}

func TestApply_ChownsEnvFileToOwner(t *testing.T) {
	settings := secretSettings()
	sys := newFakeSystem()

	require.NoError(t, Apply(sys, settings, "sk-live-1", &bytes.Buffer{}))
	assert.Equal(t, [2]int{1000, 1000}, sys.chowns[envPath(settings)])
}

func TestApply_CreatesEnvFileWhenAbsent(t *testing.T) {
	settings := secretSettings()
	sys := newFakeSystem()

	require.NoError(t, Apply(sys, settings, "sk-live-1", &bytes.Buffer{}))

	parsed, err := envfile.Parse(string(sys.files[envPath(settings)]))
	require.NoError(t, err)
	assert.Equal(t, "sk-live-1", parsed[settings.SecretEnvVar])
}

func TestApply_AppendsSingleProfileExport(t *testing.T) {
	settings := secretSettings()
	sys := newFakeSystem()
	profile := settings.ShellProfilePath()
	sys.files[profile] = []byte("# .bashrc\nalias ll='ls -l'\n")

	require.NoError(t, Apply(sys, settings, "sk-live-1", &bytes.Buffer{}))
	require.NoError(t, Apply(sys, settings, "sk-live-2", &bytes.Buffer{}))

	content := string(sys.files[profile])
	assert.Equal(t, 1, strings.Count(content, "export "+settings.SecretEnvVar),
		"re-runs must not stack export lines")
	assert.Contains(t, content, "alias ll='ls -l'")
}

func TestApply_RespectsManualProfileDeclaration(t *testing.T) {
	settings := secretSettings()
	sys := newFakeSystem()
	profile := settings.ShellProfilePath()
	manual := "export " + settings.SecretEnvVar + "=manually-set\n"
	sys.files[profile] = []byte(manual)

	require.NoError(t, Apply(sys, settings, "sk-live-1", &bytes.Buffer{}))
	assert.Equal(t, manual, string(sys.files[profile]))
}

func TestApply_EmptyKeyLeavesFilesUntouched(t *testing.T) {
	settings := secretSettings()
	sys := newFakeSystem()
	seeded := settings.SecretEnvVar + "=" + settings.SecretPlaceholder + "\n"
	sys.files[envPath(settings)] = []byte(seeded)

	var out bytes.Buffer
	require.NoError(t, Apply(sys, settings, "", &out))

	assert.Equal(t, seeded, string(sys.files[envPath(settings)]))
	assert.NotContains(t, sys.files, settings.ShellProfilePath())
	assert.NotEmpty(t, out.String(), "the skip must be announced")
}

func TestApply_QuotesKeyInProfile(t *testing.T) {
	settings := secretSettings()
	sys := newFakeSystem()

	require.NoError(t, Apply(sys, settings, "sk-live-1", &bytes.Buffer{}))
	assert.Contains(t, string(sys.files[settings.ShellProfilePath()]),
		"export "+settings.SecretEnvVar+"=\"sk-live-1\"")
}

func TestCapture_TrimsInput(t *testing.T) {
	ui := prompt.ReaderUI{In: strings.NewReader("  sk-live-1  \n"), Out: &bytes.Buffer{}}
	key, err := Capture(ui)
	require.NoError(t, err)
	assert.Equal(t, "sk-live-1", key)
}

func TestCapture_EmptyInputSkips(t *testing.T) {
	ui := prompt.ReaderUI{In: strings.NewReader("\n"), Out: &bytes.Buffer{}}
	key, err := Capture(ui)
	require.NoError(t, err)
	assert.Empty(t, key)
}

// cancelUI always reports the operator aborting.
type cancelUI struct{}

func (cancelUI) SecretInput(string, string, *string) error { return prompt.ErrCancelled }
func (cancelUI) Confirm(string, *bool) error               { return prompt.ErrCancelled }

func TestCapture_CancelledIsNotAnError(t *testing.T) {
	key, err := Capture(cancelUI{})
	require.NoError(t, err)
	assert.Empty(t, key)
}

// failUI fails with a real error.
type failUI struct{}

func (failUI) SecretInput(string, string, *string) error { return errors.New("tty gone") }
func (failUI) Confirm(string, *bool) error               { return errors.New("tty gone") }

func TestCapture_SurfacesPromptFailure(t *testing.T) {
	_, err := Capture(failUI{})
	assert.Error(t, err)
}
