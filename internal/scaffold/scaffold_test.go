package scaffold

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellate-ai/boardstrap/internal/config"
	"github.com/tessellate-ai/boardstrap/internal/templates"
)

// fakeSystem keeps the scaffolded tree in memory and records chown calls.
type fakeSystem struct {
	files  map[string][]byte
	perms  map[string]os.FileMode
	dirs   map[string]bool
	chowns map[string][2]int
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		files:  map[string][]byte{},
		perms:  map[string]os.FileMode{},
		dirs:   map[string]bool{},
		chowns: map[string][2]int{},
	}
}

func (f *fakeSystem) ReadFile(name string) ([]byte, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (f *fakeSystem) MkdirAll(path string, _ os.FileMode) error {
	for p := path; p != "/" && p != "."; p = filepath.Dir(p) {
		f.dirs[p] = true
	}
	return nil
}

func (f *fakeSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	f.files[filename] = append([]byte(nil), data...)
	f.perms[filename] = perm
	return nil
}

func (f *fakeSystem) Chown(name string, uid int, gid int) error {
	f.chowns[name] = [2]int{uid, gid}
	return nil
}

func (f *fakeSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	var paths []string
	for p := range f.dirs {
		if p == root || within(root, p) {
			paths = append(paths, p)
		}
	}
	for p := range f.files {
		if within(root, p) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := fn(p, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, "../")
}

func scaffoldSettings() config.Settings {
	settings := config.Default()
	settings.User = config.Account{Name: "pi", Home: "/home/pi", UID: 1000, GID: 1000}
	return settings
}

func TestRun_WritesAllWorkspaceFiles(t *testing.T) {
	sys := newFakeSystem()
	settings := scaffoldSettings()

	var out bytes.Buffer
	require.NoError(t, Run(sys, settings, &out))

	base := settings.WorkspacePath()
	assert.True(t, sys.dirs[filepath.Join(base, CodeDirName)])

	compose, ok := sys.files[filepath.Join(base, ComposeFileName)]
	require.True(t, ok)
	want, err := templates.Read("compose.yaml")
	require.NoError(t, err)
	assert.Equal(t, want, compose)

	assert.Contains(t, sys.files, filepath.Join(base, EnvFileName))
	assert.Contains(t, sys.files, filepath.Join(base, LauncherFileName))
}

func TestRun_FilePermissions(t *testing.T) {
	sys := newFakeSystem()
	settings := scaffoldSettings()

	require.NoError(t, Run(sys, settings, &bytes.Buffer{}))

	base := settings.WorkspacePath()
	assert.Equal(t, os.FileMode(0o644), sys.perms[filepath.Join(base, ComposeFileName)])
	assert.Equal(t, os.FileMode(0o600), sys.perms[filepath.Join(base, EnvFileName)])
	assert.Equal(t, os.FileMode(0o755), sys.perms[filepath.Join(base, LauncherFileName)])
}

func TestRun_IsDeterministic(t *testing.T) {
	sys := newFakeSystem()
	settings := scaffoldSettings()

	require.NoError(t, Run(sys, settings, &bytes.Buffer{}))
	base := settings.WorkspacePath()
	first := append([]byte(nil), sys.files[filepath.Join(base, ComposeFileName)]...)

	require.NoError(t, Run(sys, settings, &bytes.Buffer{}))
	assert.Equal(t, first, sys.files[filepath.Join(base, ComposeFileName)])
}

func TestRun_OverwritesModifiedFileWithDiffPreview(t *testing.T) {
	sys := newFakeSystem()
	settings := scaffoldSettings()
	require.NoError(t, Run(sys, settings, &bytes.Buffer{}))

	base := settings.WorkspacePath()
	path := filepath.Join(base, ComposeFileName)
	sys.files[path] = []byte("services: {}\n# local edits\n")

	var out bytes.Buffer
	require.NoError(t, Run(sys, settings, &out))

	want, err := templates.Read("compose.yaml")
	require.NoError(t, err)
	assert.Equal(t, want, sys.files[path], "local edits are replaced by the template")
	assert.Contains(t, out.String(), "local edits", "the preview shows what was discarded")
}

func TestRun_NoDiffPreviewForIdenticalContent(t *testing.T) {
	sys := newFakeSystem()
	settings := scaffoldSettings()
	require.NoError(t, Run(sys, settings, &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, Run(sys, settings, &out))
	assert.NotContains(t, out.String(), "---")
}

func TestRun_ChownsTreeToWorkspaceOwner(t *testing.T) {
	sys := newFakeSystem()
	settings := scaffoldSettings()

	require.NoError(t, Run(sys, settings, &bytes.Buffer{}))

	base := settings.WorkspacePath()
	for _, name := range []string{ComposeFileName, EnvFileName, LauncherFileName} {
		assert.Equal(t, [2]int{1000, 1000}, sys.chowns[filepath.Join(base, name)], name)
	}
	assert.Equal(t, [2]int{1000, 1000}, sys.chowns[filepath.Join(base, CodeDirName)])
}

func TestRun_SkipsChownForRootOwner(t *testing.T) {
	sys := newFakeSystem()
	settings := scaffoldSettings()
	settings.User = config.Account{Name: "root", Home: "/root"}

	require.NoError(t, Run(sys, settings, &bytes.Buffer{}))
	assert.Empty(t, sys.chowns)
}

// errSystem fails ReadFile with something other than not-exist.
type errSystem struct {
	*fakeSystem
}

func (e errSystem) ReadFile(string) ([]byte, error) {
	return nil, errors.New("permission denied")
}

func TestRun_SurfacesUnreadableExistingFile(t *testing.T) {
	sys := errSystem{newFakeSystem()}
	err := Run(sys, scaffoldSettings(), &bytes.Buffer{})
	assert.Error(t, err)
}
