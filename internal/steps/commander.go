package steps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tessellate-ai/boardstrap/internal/messages"
)

// Commander abstracts external command execution so steps can be unit tested
// without touching the host. No timeout is applied to install actions; the
// context carries operator interrupts only.
type Commander interface {
	// Run executes a command, discarding output unless it fails.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes a command and returns its trimmed stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports the path of an executable, or an error when absent.
	LookPath(name string) (string, error)
}

// RealCommander implements Commander with os/exec.
type RealCommander struct{}

// Run executes the command and surfaces the tail of its combined output on
// failure so the operator sees why a package manager call died.
func (RealCommander) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf(messages.StepCommandFailedFmt, commandLine(name, args), commandError(err, out))
	}
	return nil
}

// Output executes the command and returns trimmed stdout.
func (RealCommander) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf(messages.StepCommandFailedFmt, commandLine(name, args), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// LookPath wraps exec.LookPath.
func (RealCommander) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// commandError keeps the last part of the captured output attached to the
// error so failures from apt or npm remain diagnosable.
func commandError(err error, out []byte) error {
	const tail = 600
	text := strings.TrimSpace(string(out))
	if text == "" {
		return err
	}
	if len(text) > tail {
		text = text[len(text)-tail:]
	}
	return fmt.Errorf("%w\n%s", err, text)
}
