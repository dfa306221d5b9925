// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tfctl/awsctl/internal/log"
)

// ErrNotInteractive is returned when confirmation is needed but stdin is not
// a terminal. Callers pass --force to proceed in scripts.
var ErrNotInteractive = errors.New("confirmation required but stdin is not a terminal (use --force)")

// Message formats the standard confirmation text for an operation.
func Message(command, api, target string) string {
	return fmt.Sprintf("Performing the operation %q on target %q.", command+" ("+api+")", target)
}

// Confirm asks the user to approve message. Enter accepts the default (yes).
func Confirm(ctx context.Context, in io.Reader, out io.Writer, message string) (bool, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, ErrNotInteractive
	}

	p := tea.NewProgram(newModel(message),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	m, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}

	final := m.(model)
	log.Debugf("confirmation answered: confirmed=%v aborted=%v", final.confirmed, final.aborted)
	if final.aborted {
		return false, context.Canceled
	}
	return final.confirmed, nil
}

type keyMap struct {
	Yes   key.Binding
	No    key.Binding
	Abort key.Binding
}

var keys = keyMap{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y", "enter"),
		key.WithHelp("Y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc", "q"),
		key.WithHelp("N", "no"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	answerStyle = lipgloss.NewStyle().Faint(true)
)

type model struct {
	message   string
	answered  bool
	confirmed bool
	aborted   bool
}

func newModel(message string) model {
	return model{message: message}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, keys.Abort):
		m.aborted = true
	case key.Matches(k, keys.Yes):
		m.confirmed = true
	case key.Matches(k, keys.No):
		m.confirmed = false
	default:
		return m, nil
	}
	m.answered = true
	return m, tea.Quit
}

func (m model) View() string {
	s := titleStyle.Render("Confirm") + "\n" +
		"Are you sure you want to perform this action?\n" +
		m.message + "\n"
	if m.answered {
		answer := "no"
		if m.confirmed {
			answer = "yes"
		}
		return s + answerStyle.Render(answer) + "\n"
	}
	return s + fmt.Sprintf("[%s] Yes  [%s] No (default is %q): ",
		keys.Yes.Help().Key, keys.No.Help().Key, keys.Yes.Help().Key)
}
