// Package prompt renders the interactive prompts the pipeline needs: the
// masked API key input and yes/no confirmations.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tessellate-ai/boardstrap/internal/terminal"
)

// ErrCancelled is returned when the operator aborts a prompt with Ctrl+C.
var ErrCancelled = errors.New("prompt cancelled")

// UI defines the interaction methods the pipeline uses.
type UI interface {
	SecretInput(title string, description string, value *string) error
	Confirm(title string, value *bool) error
}

// HuhUI implements UI using charmbracelet/huh forms.
type HuhUI struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI with the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf("prompt requires an interactive terminal")
}

// promptKeyMap maps Ctrl+C to form abort and keeps the exit hint visible.
func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit"))
	return km
}

// formFilter converts InterruptMsg (an external SIGINT) to QuitMsg so
// bubbletea takes the graceful shutdown path and clears the form output.
func formFilter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if _, ok := msg.(tea.InterruptMsg); ok {
			return tea.QuitMsg{}
		}
		return msg
	}
}

func (ui *HuhUI) runForm(form *huh.Form) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}
	form.WithKeyMap(promptKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithFilter(formFilter()),
	)
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// SecretInput renders a masked input prompt.
func (ui *HuhUI) SecretInput(title string, description string, value *string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Value(value).
				EchoMode(huh.EchoModePassword),
		),
	))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(value),
		),
	))
}

// ReaderUI implements UI over plain reader/writer pairs. It backs
// non-interactive invocations (piped stdin) and tests.
type ReaderUI struct {
	In  io.Reader
	Out io.Writer
}

// SecretInput reads one line. The input is not masked; callers choose
// ReaderUI only when no terminal is attached.
func (ui ReaderUI) SecretInput(title string, description string, value *string) error {
	_, _ = fmt.Fprintf(ui.Out, "%s (%s): ", title, description)
	line, err := readLine(ui.In)
	if err != nil {
		return err
	}
	*value = line
	return nil
}

// Confirm reads a y/n answer, defaulting to the current value on blank input.
func (ui ReaderUI) Confirm(title string, value *bool) error {
	suffix := "y/N"
	if *value {
		suffix = "Y/n"
	}
	_, _ = fmt.Fprintf(ui.Out, "%s [%s]: ", title, suffix)
	line, err := readLine(ui.In)
	if err != nil {
		return err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		*value = true
	case "n", "no":
		*value = false
	case "":
	default:
		*value = false
	}
	return nil
}

func readLine(in io.Reader) (string, error) {
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
