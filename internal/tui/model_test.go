package tui

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcade/internal/catalog"
	"arcade/internal/portal"
)

const testCatalog = `[
	{"id":1,"title":"Speed Run","iframeUrl":"https://example.com/speed"},
	{"id":2,"title":"Block Puzzle","iframeUrl":"https://example.com/block"},
	{"id":3,"title":"Retro Racer","iframeUrl":"https://example.com/racer"}
]`

func newTestModel(t *testing.T, payload string) Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return FromCatalog(catalog.Load([]byte(payload), logger), false, logger)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestModel_TypingFiltersLibrary(t *testing.T) {
	m := newTestModel(t, testCatalog)

	m, _ = press(t, m, runes("r"), runes("a"))

	snap := m.ctrl.Snapshot()
	assert.Equal(t, "ra", snap.Query)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Retro Racer", snap.Items[0].Title)
	assert.Contains(t, m.View(), "1 games found")
}

func TestModel_EmptyResult(t *testing.T) {
	m := newTestModel(t, testCatalog)

	m, _ = press(t, m, runes("zzz"))

	assert.Empty(t, m.ctrl.Snapshot().Items)
	assert.Contains(t, m.View(), `No games found matching "zzz"`)
}

func TestModel_SelectAndBack(t *testing.T) {
	m := newTestModel(t, testCatalog)

	m, _ = press(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	sel, ok := m.ctrl.Selection()
	require.True(t, ok)
	assert.Equal(t, "Block Puzzle", sel.Title)
	assert.Equal(t, portal.ViewPlayer, m.ctrl.View())
	assert.Contains(t, m.View(), "https://example.com/block")

	m, _ = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, portal.ViewLibrary, m.ctrl.View())
}

func TestModel_CursorStaysInRange(t *testing.T) {
	m := newTestModel(t, testCatalog)

	m, _ = press(t, m, key(tea.KeyUp))
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown))
	assert.Equal(t, 2, m.cursor)
}

func TestModel_QueryResetsCursor(t *testing.T) {
	m := newTestModel(t, testCatalog)

	m, _ = press(t, m, key(tea.KeyDown), key(tea.KeyDown), runes("e"))
	assert.Equal(t, 0, m.cursor)
}

func TestModel_CloseAndBrandClearSelection(t *testing.T) {
	m := newTestModel(t, testCatalog)

	m, _ = press(t, m, key(tea.KeyEnter), runes("q"))
	assert.Equal(t, portal.ViewLibrary, m.ctrl.View())

	m, _ = press(t, m, key(tea.KeyEnter), key(tea.KeyCtrlB))
	assert.Equal(t, portal.ViewLibrary, m.ctrl.View())
}

func TestModel_SelectionKeepsQuery(t *testing.T) {
	m := newTestModel(t, testCatalog)

	m, _ = press(t, m, runes("speed"), key(tea.KeyEnter), key(tea.KeyEsc))

	snap := m.ctrl.Snapshot()
	assert.Equal(t, "speed", snap.Query)
	assert.Len(t, snap.Items, 1)
}

func TestModel_ToggleFullscreen(t *testing.T) {
	m := newTestModel(t, testCatalog)

	m, cmd := press(t, m, key(tea.KeyCtrlF))
	require.NotNil(t, cmd)
	assert.True(t, m.ctrl.Snapshot().Fullscreen)

	next, _ := m.Update(altScreenMsg{active: true})
	m = next.(Model)
	assert.True(t, m.screen.Active())
	assert.True(t, m.ctrl.Snapshot().Fullscreen)

	m, cmd = press(t, m, key(tea.KeyCtrlF))
	require.NotNil(t, cmd)
	assert.False(t, m.ctrl.Snapshot().Fullscreen)
}

func TestModel_ExternalScreenChangeIsMirrored(t *testing.T) {
	m := newTestModel(t, testCatalog)

	next, _ := m.Update(altScreenMsg{active: true})
	m = next.(Model)
	assert.True(t, m.ctrl.Snapshot().Fullscreen)

	next, _ = m.Update(altScreenMsg{active: false})
	m = next.(Model)
	assert.False(t, m.ctrl.Snapshot().Fullscreen)
}

func TestModel_CopyLink(t *testing.T) {
	m := newTestModel(t, testCatalog)
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	m, _ = press(t, m, key(tea.KeyEnter), key(tea.KeyCtrlY))
	assert.Equal(t, "https://example.com/speed", copied)
	assert.Contains(t, m.View(), "Link copied.")

	m.copy = func(string) error { return errors.New("no clipboard") }
	m, _ = press(t, m, key(tea.KeyCtrlY))
	assert.Contains(t, m.View(), "Could not copy the link.")
}

func TestModel_LoadError(t *testing.T) {
	m := newTestModel(t, `{"games":[]}`)

	assert.Equal(t, portal.ViewError, m.ctrl.View())
	view := m.View()
	assert.Contains(t, view, "Error")
	assert.Contains(t, view, "Failed to load games data.")

	m, cmd := press(t, m, runes("x"), key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.ctrl.Snapshot().Query)

	_, cmd = press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(t, testCatalog)

	_, cmd := press(t, m, key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestVisible(t *testing.T) {
	items := []catalog.Item{
		catalog.NewItem("1", "a", "", ""),
		catalog.NewItem("2", "b", "", ""),
		catalog.NewItem("3", "c", "", ""),
		catalog.NewItem("4", "d", "", ""),
	}

	rows := visible(items, 3, 2)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].index)
	assert.Equal(t, 3, rows[1].index)

	assert.Len(t, visible(items, 0, 10), 4)
	assert.Nil(t, visible(nil, 0, 5))
}
