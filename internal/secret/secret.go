// Package secret captures the API key and persists it into the scaffolded
// env file and the user's shell profile.
package secret

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessellate-ai/boardstrap/internal/config"
	"github.com/tessellate-ai/boardstrap/internal/envfile"
	"github.com/tessellate-ai/boardstrap/internal/messages"
	"github.com/tessellate-ai/boardstrap/internal/prompt"
	"github.com/tessellate-ai/boardstrap/internal/scaffold"
)

// System abstracts the filesystem operations secret persistence needs.
type System interface {
	ReadFile(name string) ([]byte, error)
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	AppendFile(filename string, data []byte, perm os.FileMode) error
	Chown(name string, uid int, gid int) error
}

// Capture prompts for the API key. An empty string means the operator chose
// to skip; that is not an error.
func Capture(ui prompt.UI) (string, error) {
	var key string
	err := ui.SecretInput(messages.SecretPromptTitle, messages.SecretPromptBody, &key)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return "", nil
		}
		return "", fmt.Errorf(messages.SecretPromptFailedFmt, err)
	}
	return strings.TrimSpace(key), nil
}

// Apply persists a captured key: the env file placeholder is replaced, and a
// guarded export line is appended to the shell profile unless the variable is
// already declared there. An empty key leaves everything untouched and warns.
func Apply(sys System, settings config.Settings, key string, out io.Writer) error {
	if key == "" {
		_, _ = fmt.Fprintln(out, messages.SecretSkipped)
		return nil
	}

	envPath := filepath.Join(settings.WorkspacePath(), scaffold.EnvFileName)
	if err := patchEnvFile(sys, settings, envPath, key); err != nil {
		return err
	}

	profilePath := settings.ShellProfilePath()
	if err := appendProfileExport(sys, settings, profilePath, key, out); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, messages.SecretSavedFmt, envPath, profilePath)
	return nil
}

func patchEnvFile(sys System, settings config.Settings, envPath string, key string) error {
	content, err := sys.ReadFile(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.SecretReadEnvFailedFmt, envPath, err)
	}
	updated := envfile.Set(string(content), settings.SecretEnvVar, key)
	if !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	if err := sys.WriteFileAtomic(envPath, []byte(updated), 0o600); err != nil {
		return fmt.Errorf(messages.SecretWriteEnvFailedFmt, envPath, err)
	}
	// The env file belongs to the workspace owner, not root.
	if settings.User.UID != 0 || settings.User.GID != 0 {
		if err := sys.Chown(envPath, settings.User.UID, settings.User.GID); err != nil {
			return fmt.Errorf(messages.SecretWriteEnvFailedFmt, envPath, err)
		}
	}
	return nil
}

// appendProfileExport adds the export line once. Re-runs with the same or a
// different key leave an existing declaration alone; the env file is the
// authoritative location and the profile line is a convenience.
func appendProfileExport(sys System, settings config.Settings, profilePath string, key string, out io.Writer) error {
	existing, err := sys.ReadFile(profilePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.SecretReadProfileFailedFmt, profilePath, err)
	}
	if envfile.HasKey(string(existing), settings.SecretEnvVar) {
		_, _ = fmt.Fprintln(out, messages.SecretProfileHasExport)
		return nil
	}

	line := fmt.Sprintf("\n%s\nexport %s=%q\n", messages.SecretProfileComment, settings.SecretEnvVar, key)
	if err := sys.AppendFile(profilePath, []byte(line), 0o644); err != nil {
		return fmt.Errorf(messages.SecretAppendProfileFailedFmt, profilePath, err)
	}
	return nil
}
