// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"cogentcore.org/recordpanel/base/errors"
	"cogentcore.org/recordpanel/recordpanel"
	"cogentcore.org/recordpanel/render"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Tip    key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp implements [help.KeyMap].
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Tip, k.Reload, k.Quit}
}

// FullHelp implements [help.KeyMap].
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "toggle"),
	),
	Tip: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tooltip"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	busyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	tipStyle  = lipgloss.NewStyle().Italic(true)
)

// viewModel is the bubbletea model of the view command. It is the
// display surface of the panel it presents.
type viewModel struct {
	app    *app
	cursor int
	help   help.Model

	// shown is the tooltip currently shown, if any.
	shown *recordpanel.Tooltip

	busy      bool
	suspended int
	layouts   int
	err       error
}

func newViewModel(a *app) *viewModel {
	m := &viewModel{app: a, help: help.New()}
	a.panel.Attach(m)
	return m
}

// SuspendLayout implements [recordpanel.Surface].
func (m *viewModel) SuspendLayout() {
	m.suspended++
}

// ResumeLayout implements [recordpanel.Surface].
func (m *viewModel) ResumeLayout() {
	m.suspended--
	m.layouts++
	m.clampCursor()
}

// SetBusy implements [recordpanel.Surface].
func (m *viewModel) SetBusy(busy bool) {
	m.busy = busy
}

func (m *viewModel) options() render.Options {
	return render.Options{
		ShowHidden: m.app.cfg.ShowHidden,
		ShowCursor: true,
		Cursor:     m.cursor,
		Styles:     render.DefaultStyles(),
	}
}

func (m *viewModel) lines() []render.Line {
	return render.Lines(m.app.panel, m.options())
}

func (m *viewModel) clampCursor() {
	n := len(m.lines())
	m.cursor = max(min(m.cursor, n-1), 0)
}

func (m *viewModel) hideTip() {
	if m.shown != nil {
		m.shown.Hide()
		m.shown = nil
	}
}

// showTip shows the first tooltip of the row under the cursor.
func (m *viewModel) showTip() {
	m.hideTip()
	lines := m.lines()
	if m.cursor >= len(lines) || lines[m.cursor].Row == nil {
		return
	}
	rw := lines[m.cursor].Row
	for _, tl := range rw.Tools {
		if tt := rw.Tooltip(tl.Affordance.ID); tt != nil {
			tt.Show()
			m.shown = tt
			return
		}
	}
}

func (m *viewModel) toggle() {
	lines := m.lines()
	if m.cursor >= len(lines) {
		return
	}
	switch ln := lines[m.cursor]; {
	case ln.Group != nil:
		ln.Group.Click()
	case ln.Row != nil:
		ln.Row.Click("")
	}
	m.clampCursor()
}

func (m *viewModel) Init() tea.Cmd {
	return nil
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(kmsg, keys.Quit):
		m.hideTip()
		return m, tea.Quit
	case key.Matches(kmsg, keys.Up):
		m.hideTip()
		m.cursor--
		m.clampCursor()
	case key.Matches(kmsg, keys.Down):
		m.hideTip()
		m.cursor++
		m.clampCursor()
	case key.Matches(kmsg, keys.Toggle):
		m.hideTip()
		m.toggle()
	case key.Matches(kmsg, keys.Tip):
		if m.shown != nil {
			m.hideTip()
		} else {
			m.showTip()
		}
	case key.Matches(kmsg, keys.Reload):
		m.hideTip()
		m.err = errors.Log(m.app.load())
	}
	return m, nil
}

func (m *viewModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d rows, %d groups", m.app.cfg.Records, m.app.panel.NumRows(), m.app.panel.NumGroups())
	if m.busy {
		b.WriteString(" " + busyStyle.Render("loading..."))
	}
	b.WriteString("\n\n")
	b.WriteString(render.Tree(m.app.panel, m.options()))
	if m.shown != nil && m.shown.Visible {
		b.WriteString("\n" + tipStyle.Render(render.TipText(m.shown.Content)) + "\n")
	}
	if m.err != nil {
		b.WriteString("\nerror: " + m.err.Error() + "\n")
	}
	b.WriteString("\n" + m.help.View(keys) + "\n")
	return b.String()
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse the panel interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFromCmd(cmd)
			if err != nil {
				return err
			}
			m := newViewModel(a)
			defer a.panel.Detach()
			_, err = tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}
}
