// Package portal owns the per-visitor view state: the search query, the
// selected game and the fullscreen session, over a shared catalog.
package portal

import (
	"sync"

	"arcade/internal/catalog"
	"arcade/internal/fullscreen"
	"arcade/internal/search"
)

// View names the screen the presentation shell should draw.
type View string

const (
	ViewLibrary View = "library"
	ViewPlayer  View = "player"
	ViewError   View = "error"
)

// Snapshot is the read-only state handed to presentation shells.
type Snapshot struct {
	Items      []catalog.Item `json:"filteredItems"`
	Selection  *catalog.Item  `json:"selection"`
	Query      string         `json:"query"`
	Fullscreen bool           `json:"isFullscreen"`
	LoadError  string         `json:"loadError,omitempty"`
}

// View derives the active screen from the snapshot.
func (s Snapshot) View() View {
	switch {
	case s.LoadError != "":
		return ViewError
	case s.Selection != nil:
		return ViewPlayer
	default:
		return ViewLibrary
	}
}

// Controller is the library/player state machine for one visitor.
// Initial state is the library with no selection.
type Controller struct {
	mu        sync.Mutex
	catalog   *catalog.Catalog
	screen    *fullscreen.Session
	query     string
	selection *catalog.Item
}

// NewController binds a controller to a catalog and a fullscreen session.
func NewController(c *catalog.Catalog, screen *fullscreen.Session) *Controller {
	return &Controller{catalog: c, screen: screen}
}

// SetQuery replaces the search query.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.catalog.Failed() {
		return
	}
	c.query = text
}

// Select opens item in the player, replacing any current selection. The
// item is resolved through its catalog key, so items without an id and
// later holders of a duplicate id open as listed. It reports false, and
// changes nothing, when the catalog does not hold the item.
func (c *Controller) Select(item catalog.Item) bool {
	return c.SelectKey(item.Key())
}

// SelectKey is Select by catalog key.
func (c *Controller) SelectKey(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.catalog.Failed() {
		return false
	}
	it, ok := c.catalog.Resolve(key)
	if !ok {
		return false
	}
	c.selection = &it
	return true
}

// ClearSelection returns to the library. The query is kept.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = nil
}

// Back is the player's back action.
func (c *Controller) Back() { c.ClearSelection() }

// Close is the player's close action.
func (c *Controller) Close() { c.ClearSelection() }

// BrandClick handles a click on the logo from any view.
func (c *Controller) BrandClick() { c.ClearSelection() }

// ToggleFullscreen asks the host to flip fullscreen. It does not wait for
// the change to settle.
func (c *Controller) ToggleFullscreen() {
	if c.catalog.Failed() || c.screen == nil {
		return
	}
	c.screen.Toggle()
}

// Selection returns the selected item, if any.
func (c *Controller) Selection() (catalog.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selection == nil {
		return catalog.Item{}, false
	}
	return *c.selection, true
}

// Snapshot captures the state needed to render every view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Query:      c.query,
		Fullscreen: c.screen != nil && c.screen.Active(),
	}
	if c.catalog.Failed() {
		snap.Items = []catalog.Item{}
		snap.LoadError = c.catalog.Message()
		return snap
	}
	snap.Items = search.Filter(c.catalog.Items(), c.query)
	if c.selection != nil {
		sel := *c.selection
		snap.Selection = &sel
	}
	return snap
}

// View is shorthand for Snapshot().View().
func (c *Controller) View() View {
	return c.Snapshot().View()
}

// Release detaches the controller from its fullscreen host.
func (c *Controller) Release() {
	if c.screen != nil {
		c.screen.Close()
	}
}
