// Package tui is a terminal presentation shell over the portal controller.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"arcade/internal/catalog"
	"arcade/internal/fullscreen"
	"arcade/internal/portal"
)

// Model is the bubbletea model. It keeps no view state of its own beyond
// the list cursor; everything else is read from the controller.
type Model struct {
	ctrl   *portal.Controller
	screen *AltScreen
	logger *slog.Logger
	copy   func(string) error

	input  textinput.Model
	cursor int
	width  int
	height int
	status string
}

// New builds the model. screen must be the host the controller's
// fullscreen session was created with.
func New(ctrl *portal.Controller, screen *AltScreen, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	ti := textinput.New()
	ti.Placeholder = "Search games..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Focus()
	return Model{
		ctrl:   ctrl,
		screen: screen,
		logger: logger,
		copy:   clipboard.WriteAll,
		input:  ti,
	}
}

// FromCatalog wires a controller, fullscreen session and alternate-screen
// host for c. altScreen tells whether the program starts on the alternate screen.
func FromCatalog(c *catalog.Catalog, altScreen bool, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	screen := NewAltScreen(altScreen)
	ctrl := portal.NewController(c, fullscreen.NewSession(screen, logger))
	return New(ctrl, screen, logger)
}

// Release detaches the fullscreen session from the terminal host.
func (m Model) Release() {
	m.ctrl.Release()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case altScreenMsg:
		m.screen.Report(msg.active)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+f":
		m.ctrl.ToggleFullscreen()
		return m, m.screen.TakeCmd()
	case "ctrl+b":
		m.ctrl.BrandClick()
		m.status = ""
		return m, nil
	}

	switch m.ctrl.View() {
	case portal.ViewError:
		if msg.String() == "q" || msg.String() == "esc" {
			return m, tea.Quit
		}
		return m, nil
	case portal.ViewPlayer:
		return m.handlePlayerKey(msg)
	default:
		return m.handleLibraryKey(msg)
	}
}

func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.ctrl.Snapshot().Items
	switch msg.String() {
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor < len(items) {
			m.ctrl.Select(items[m.cursor])
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.ctrl.SetQuery(m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) handlePlayerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "left":
		m.ctrl.Back()
		m.status = ""
	case "q":
		m.ctrl.Close()
		m.status = ""
	case "ctrl+y":
		sel, ok := m.ctrl.Selection()
		if !ok {
			return m, nil
		}
		if err := m.copy(sel.IframeURL); err != nil {
			m.logger.Warn("clipboard copy failed", "err", err)
			m.status = "Could not copy the link."
		} else {
			m.status = "Link copied."
		}
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.ctrl.Snapshot()
	var b strings.Builder

	if snap.View() == portal.ViewError {
		b.WriteString(errorStyle.Render("Error") + "\n")
		b.WriteString(mutedStyle.Render(snap.LoadError) + "\n\n")
		b.WriteString(mutedStyle.Render("q quit"))
		return frameStyle.Render(b.String())
	}

	fs := "[ ] fullscreen"
	if snap.Fullscreen {
		fs = "[x] fullscreen"
	}
	b.WriteString(brandStyle.Render("UNBLOCKED") + accentStyle.Render("GAMES") + "  " + mutedStyle.Render(fs) + "\n\n")

	switch snap.View() {
	case portal.ViewPlayer:
		sel := snap.Selection
		b.WriteString(titleStyle.Render(sel.Title) + "\n")
		b.WriteString("Open in a browser to play:\n")
		b.WriteString(accentStyle.Render(sel.IframeURL) + "\n\n")
		b.WriteString(mutedStyle.Render("Controls may vary by game. Use fullscreen for the best experience.") + "\n\n")
		if m.status != "" {
			b.WriteString(m.status + "\n")
		}
		b.WriteString(mutedStyle.Render("esc back · q close · ctrl+y copy link · ctrl+f fullscreen · ctrl+b home"))
	default:
		b.WriteString(m.input.View() + "\n\n")
		b.WriteString(titleStyle.Render(fmt.Sprintf("Popular Games  %s", mutedStyle.Render(fmt.Sprintf("%d games found", len(snap.Items))))) + "\n")
		if len(snap.Items) == 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("No games found matching %q", snap.Query)) + "\n")
		}
		for _, it := range visible(snap.Items, m.cursor, m.listHeight()) {
			line := "  " + it.item.Title
			if it.index == m.cursor {
				line = selectedStyle.Render("> " + it.item.Title)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + mutedStyle.Render("↑/↓ move · enter play · ctrl+f fullscreen · ctrl+c quit"))
	}
	return b.String()
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 10
	}
	if h := m.height - 9; h > 1 {
		return h
	}
	return 1
}
