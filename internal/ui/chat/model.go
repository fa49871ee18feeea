// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat workspace view.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/novalabs/nova-tui/internal/api"
	"github.com/novalabs/nova-tui/internal/model"
	"github.com/novalabs/nova-tui/internal/session"
	"github.com/novalabs/nova-tui/internal/ui/components"
	"github.com/novalabs/nova-tui/internal/ui/styles"
)

// =============================================================================
// VIEW MODES
// =============================================================================

// viewMode selects what keyboard input is routed to.
type viewMode int

const (
	modeNormal viewMode = iota
	modeRenaming
	modeConfirmDelete
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat workspace.
type Model struct {
	theme *styles.Theme

	client *api.Client
	sync   *session.Synchronizer

	// Dimensions
	width  int
	height int

	// UI components
	viewport    viewport.Model
	input       textinput.Model
	renameInput textinput.Model
	spinner     spinner.Model
	header      *components.Header
	sidebar     *components.Sidebar
	statusBar   *components.StatusBar
	confirm     *components.Confirm

	keyMap KeyMap
	mode   viewMode

	// deleteTarget is the chat id pending confirmation.
	deleteTarget string

	// markdown renders assistant messages; rebuilt on resize and theme
	// change.
	markdown *markdownRenderer

	// rendered is the timeline slice last written to the viewport.
	// Slice identity is enough: idle polls never replace the slice.
	rendered []model.Message

	sending   bool
	statusSeq int
}

// New creates the chat workspace model.
func New(client *api.Client, sync *session.Synchronizer, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.CharLimit = 4000
	input.Focus()

	renameInput := textinput.New()
	renameInput.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := Model{
		theme:       theme,
		client:      client,
		sync:        sync,
		viewport:    viewport.New(80, 20),
		input:       input,
		renameInput: renameInput,
		spinner:     sp,
		header:      components.NewHeader(theme),
		sidebar:     components.NewSidebar(theme),
		statusBar:   components.NewStatusBar(theme),
		confirm:     components.NewConfirm(theme),
		keyMap:      DefaultKeyMap(),
		markdown:    newMarkdownRenderer(theme, 72),
	}
	m.statusBar.Shortcuts = m.keyMap.shortcuts()
	if sess := sync.Session(); sess != nil {
		m.header.UserEmail = sess.User.Email
	}
	return m
}

// Init implements tea.Model. It kicks off the bootstrap chat list fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadChatsCmd(true))
}

// SetTheme swaps the theme on the model and every component.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spinner.Style = theme.Spinner
	m.header.SetTheme(theme)
	m.sidebar.SetTheme(theme)
	m.statusBar.SetTheme(theme)
	m.confirm.SetTheme(theme)
	m.markdown = newMarkdownRenderer(theme, m.markdown.width)
	m.rendered = nil
	m.refreshViewport()
}

// setSize lays out the workspace for the given terminal dimensions.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height

	sidebarWidth := width / 4
	if sidebarWidth < 20 {
		sidebarWidth = 20
	}
	if sidebarWidth > 36 {
		sidebarWidth = 36
	}

	contentWidth := width - sidebarWidth - 1
	if contentWidth < 20 {
		contentWidth = 20
	}

	// header 1, input 2 (border + line), status bar 1
	contentHeight := height - 4
	if contentHeight < 5 {
		contentHeight = 5
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.input.Width = contentWidth - 4
	m.renameInput.Width = sidebarWidth - 4

	wrap := contentWidth - 10
	if wrap < 20 {
		wrap = 20
	}
	if wrap != m.markdown.width {
		m.markdown = newMarkdownRenderer(m.theme, wrap)
		m.rendered = nil
	}
	m.refreshViewport()
}

// setStatus shows a transient status message.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.statusBar.SetStatus(text, isError)
	return statusTimerCmd(m.statusSeq)
}
