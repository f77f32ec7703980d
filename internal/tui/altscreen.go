package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"arcade/internal/fullscreen"
)

// altScreenMsg reports that the program actually switched screens.
type altScreenMsg struct{ active bool }

// AltScreen is a fullscreen.Host backed by the terminal's alternate screen.
// Requests are queued as tea commands; the switch is confirmed by an
// altScreenMsg once bubbletea has run them.
type AltScreen struct {
	fullscreen.Notifier

	mu      sync.Mutex
	active  bool
	pending []tea.Cmd
}

var _ fullscreen.Host = (*AltScreen)(nil)

// NewAltScreen starts in the given state, matching how the program was launched.
func NewAltScreen(active bool) *AltScreen {
	return &AltScreen{active: active}
}

func (a *AltScreen) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *AltScreen) Request() error {
	a.queue(tea.EnterAltScreen, true)
	return nil
}

func (a *AltScreen) Exit() error {
	a.queue(tea.ExitAltScreen, false)
	return nil
}

func (a *AltScreen) queue(cmd tea.Cmd, active bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = append(a.pending, cmd, func() tea.Msg { return altScreenMsg{active: active} })
}

// TakeCmd returns the queued switches as one ordered command, or nil.
func (a *AltScreen) TakeCmd() tea.Cmd {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.pending) == 0 {
		return nil
	}
	cmds := a.pending
	a.pending = nil
	return tea.Sequence(cmds...)
}

// Report records the screen the terminal is on and notifies subscribers.
func (a *AltScreen) Report(active bool) {
	a.mu.Lock()
	a.active = active
	a.mu.Unlock()
	a.Notify(active)
}
