// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the login and registration screens.
package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/novalabs/nova-tui/internal/api"
	"github.com/novalabs/nova-tui/internal/model"
	"github.com/novalabs/nova-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// AuthenticatedMsg is emitted to the root model when sign-in succeeds.
type AuthenticatedMsg struct {
	Session *model.Session
}

// authResultMsg carries the backend's answer to a login or register call.
type authResultMsg struct {
	result *api.AuthResult
	err    error
}

// =============================================================================
// MODES AND FIELDS
// =============================================================================

// Mode selects between the sign-in and sign-up forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Field indices into the inputs slice. Login uses the last two.
const (
	fieldFirstname = iota
	fieldLastname
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// =============================================================================
// AUTH MODEL
// =============================================================================

// Model is the Bubble Tea model for the auth screens.
type Model struct {
	mode  Mode
	theme *styles.Theme

	client *api.Client

	inputs  []textinput.Model
	focus   int
	spinner spinner.Model

	busy   bool
	errMsg string

	width  int
	height int
}

// New creates the auth model, starting on the sign-in form.
func New(client *api.Client, theme *styles.Theme) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 128
		inputs[i] = ti
	}
	inputs[fieldFirstname].Placeholder = "First name"
	inputs[fieldLastname].Placeholder = "Last name"
	inputs[fieldEmail].Placeholder = "Email"
	inputs[fieldPassword].Placeholder = "Password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldConfirm].Placeholder = "Confirm password"
	inputs[fieldConfirm].EchoMode = textinput.EchoPassword

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := Model{
		mode:    ModeLogin,
		theme:   theme,
		client:  client,
		inputs:  inputs,
		spinner: sp,
	}
	m.setFocus(m.firstField())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetTheme swaps the theme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spinner.Style = theme.Spinner
}

// firstField returns the first visible field for the current mode.
func (m Model) firstField() int {
	if m.mode == ModeLogin {
		return fieldEmail
	}
	return fieldFirstname
}

// lastField returns the last visible field for the current mode.
func (m Model) lastField() int {
	if m.mode == ModeLogin {
		return fieldPassword
	}
	return fieldConfirm
}

func (m *Model) setFocus(idx int) {
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = authErrorText(msg.err)
			return m, nil
		}
		session := &model.Session{User: msg.result.User, Token: msg.result.Token}
		return m, func() tea.Msg { return AuthenticatedMsg{Session: session} }

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		next := m.focus + 1
		if next > m.lastField() {
			next = m.firstField()
		}
		m.setFocus(next)
		return m, nil

	case "shift+tab", "up":
		prev := m.focus - 1
		if prev < m.firstField() {
			prev = m.lastField()
		}
		m.setFocus(prev)
		return m, nil

	case "ctrl+t":
		if m.mode == ModeLogin {
			m.mode = ModeRegister
		} else {
			m.mode = ModeLogin
		}
		m.errMsg = ""
		m.setFocus(m.firstField())
		return m, nil

	case "enter":
		return m.submit()
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

// submit validates the form and starts the backend call.
func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if m.mode == ModeLogin {
		if email == "" || password == "" {
			m.errMsg = "Please fill in all fields"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.loginCmd(email, password))
	}

	firstname := strings.TrimSpace(m.inputs[fieldFirstname].Value())
	lastname := strings.TrimSpace(m.inputs[fieldLastname].Value())
	confirm := m.inputs[fieldConfirm].Value()

	switch {
	case firstname == "" || lastname == "" || email == "" || password == "" || confirm == "":
		m.errMsg = "Please fill in all fields"
		return m, nil
	case len(password) < 6:
		m.errMsg = "Password must be at least 6 characters"
		return m, nil
	case password != confirm:
		m.errMsg = "Passwords do not match"
		return m, nil
	}

	m.busy = true
	m.errMsg = ""
	return m, tea.Batch(m.spinner.Tick, m.registerCmd(firstname, lastname, email, password))
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Login(context.Background(), email, password)
		return authResultMsg{result: result, err: err}
	}
}

func (m Model) registerCmd(firstname, lastname, email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Register(context.Background(), firstname, lastname, email, password)
		return authResultMsg{result: result, err: err}
	}
}

// authErrorText renders an auth failure for the form.
func authErrorText(err error) string {
	if api.IsTimeout(err) {
		return "Request timed out. Please try again."
	}
	return err.Error()
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := "Sign in to Nova"
	hint := "ctrl+t sign up instead"
	if m.mode == ModeRegister {
		title = "Create your Nova account"
		hint = "ctrl+t sign in instead"
	}
	b.WriteString(m.theme.AuthTitle.Render(title))
	b.WriteString("\n")

	for i := m.firstField(); i <= m.lastField(); i++ {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.AuthHint.Render(" signing in..."))
		b.WriteString("\n")
	} else if m.errMsg != "" {
		b.WriteString(m.theme.AuthError.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.AuthHint.Render(hint))

	box := m.theme.AuthBox.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
