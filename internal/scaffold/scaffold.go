// Package scaffold writes the static workspace files: the compose descriptor,
// the env file, and the launcher script.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"

	"github.com/tessellate-ai/boardstrap/internal/config"
	"github.com/tessellate-ai/boardstrap/internal/messages"
	"github.com/tessellate-ai/boardstrap/internal/templates"
)

// diffPreviewMaxLines bounds the overwrite preview so a heavily edited file
// does not flood the console.
const diffPreviewMaxLines = 40

// ComposeFileName is the orchestration descriptor written into the workspace.
const ComposeFileName = "docker-compose.yml"

// EnvFileName holds the secret; seeded with the placeholder.
const EnvFileName = ".env"

// LauncherFileName is the interactive native/container launcher.
const LauncherFileName = "start-agent.sh"

// CodeDirName is the subdirectory bind-mounted into the container.
const CodeDirName = "workspace"

// System abstracts the filesystem operations the scaffolder performs.
type System interface {
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	Chown(name string, uid int, gid int) error
	WalkDir(root string, fn fs.WalkDirFunc) error
}

type fileSpec struct {
	name     string
	template string
	perm     os.FileMode
}

func workspaceFiles() []fileSpec {
	return []fileSpec{
		{ComposeFileName, "compose.yaml", 0o644},
		{EnvFileName, "env", 0o600},
		{LauncherFileName, "start-agent.sh", 0o755},
	}
}

// Run writes the workspace files under settings.WorkspacePath(). Existing
// files are replaced unconditionally; when the previous content differs from
// the template a unified diff preview is printed first so the operator can
// see what was lost. The finished tree is chowned to the workspace owner.
func Run(sys System, settings config.Settings, out io.Writer) error {
	base := settings.WorkspacePath()
	codeDir := filepath.Join(base, CodeDirName)
	if err := sys.MkdirAll(codeDir, 0o755); err != nil {
		return fmt.Errorf(messages.ScaffoldCreateDirFailedFmt, codeDir, err)
	}

	for _, file := range workspaceFiles() {
		if err := writeFile(sys, base, file, out); err != nil {
			return err
		}
	}

	if err := chownTree(sys, base, settings.User); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, messages.ScaffoldDoneFmt, base)
	return nil
}

func writeFile(sys System, base string, file fileSpec, out io.Writer) error {
	data, err := templates.Read(file.template)
	if err != nil {
		return fmt.Errorf(messages.ScaffoldReadTemplateFmt, file.template, err)
	}

	path := filepath.Join(base, file.name)
	existing, readErr := sys.ReadFile(path)
	switch {
	case readErr == nil && string(existing) == string(data):
		_, _ = fmt.Fprintf(out, messages.ScaffoldWroteFmt, file.name)
	case readErr == nil:
		printDiffPreview(out, path, string(existing), string(data))
		_, _ = fmt.Fprintf(out, messages.ScaffoldOverwroteFmt, file.name)
	case errors.Is(readErr, os.ErrNotExist):
		_, _ = fmt.Fprintf(out, messages.ScaffoldWroteFmt, file.name)
	default:
		return fmt.Errorf(messages.ScaffoldStatFailedFmt, path, readErr)
	}

	if err := sys.WriteFileAtomic(path, data, file.perm); err != nil {
		return fmt.Errorf(messages.ScaffoldWriteFileFmt, path, err)
	}
	return nil
}

// printDiffPreview shows what an overwrite discards, truncated to
// diffPreviewMaxLines.
func printDiffPreview(out io.Writer, path string, existing string, replacement string) {
	unified := udiff.Unified(path, path+" (template)", existing, replacement)
	if unified == "" {
		return
	}
	_, _ = fmt.Fprintf(out, messages.ScaffoldDiffHeaderFmt, path)
	lines := strings.Split(strings.TrimRight(unified, "\n"), "\n")
	truncated := false
	if len(lines) > diffPreviewMaxLines {
		lines = lines[:diffPreviewMaxLines]
		truncated = true
	}
	for _, line := range lines {
		_, _ = fmt.Fprintf(out, "  %s\n", line)
	}
	if truncated {
		_, _ = fmt.Fprint(out, messages.ScaffoldDiffTruncated)
	}
}

// chownTree hands the scaffolded tree to the workspace owner; the pipeline
// runs as root but the files belong to the invoking user.
func chownTree(sys System, base string, owner config.Account) error {
	if owner.UID == 0 && owner.GID == 0 {
		return nil
	}
	return sys.WalkDir(base, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := sys.Chown(path, owner.UID, owner.GID); err != nil {
			return fmt.Errorf(messages.ScaffoldChownFailedFmt, path, err)
		}
		return nil
	})
}
