package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

//go:embed games.json
var embeddedGames []byte

var (
	// ErrNotSequence is the Load-Error raised when the payload is not an array.
	ErrNotSequence = errors.New("games data is not an array")
	// ErrUnreadable is the Load-Error raised when the payload cannot be read or decoded.
	ErrUnreadable = errors.New("games data could not be loaded")
)

// Catalog is the ordered, immutable collection of items. A catalog whose
// load failed holds no items and reports the failure through Err.
type Catalog struct {
	items []Item
	index map[ItemID]int
	keys  map[string]int
	err   error
}

// Load interprets payload as a sequence of items. It never returns nil.
// A nil logger means slog.Default().
func Load(payload []byte, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	trimmed := bytes.TrimSpace(payload)
	var probe any
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		logger.Error("catalog payload could not be decoded", "err", err)
		return failed(fmt.Errorf("%w: %v", ErrUnreadable, err))
	}
	if _, ok := probe.([]any); !ok {
		logger.Error("catalog payload is not an array", "type", fmt.Sprintf("%T", probe))
		return failed(ErrNotSequence)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return failed(fmt.Errorf("%w: %v", ErrUnreadable, err))
	}
	items := make([]Item, 0, len(raw))
	for _, element := range raw {
		items = append(items, decodeItem(element))
	}
	return build(items, logger)
}

// Open reads name from fsys and loads it. A read failure is a Load-Error.
func Open(fsys fs.FS, name string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	payload, err := fs.ReadFile(fsys, name)
	if err != nil {
		logger.Error("catalog source could not be read", "name", name, "err", err)
		return failed(fmt.Errorf("%w: %v", ErrUnreadable, err))
	}
	return Load(payload, logger)
}

// FromPath loads the file at path, or the bundled catalog when path is empty.
func FromPath(path string, logger *slog.Logger) *Catalog {
	if path == "" {
		return Embedded(logger)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	dir, name := filepath.Split(abs)
	return Open(os.DirFS(dir), name, logger)
}

// Embedded loads the catalog bundled with the binary.
func Embedded(logger *slog.Logger) *Catalog {
	return Load(embeddedGames, logger)
}

// FromItems builds a loaded catalog from items already in memory.
func FromItems(items []Item) *Catalog {
	return build(append([]Item(nil), items...), nil)
}

// build indexes items and gives each one a key. The first holder of an id
// is keyed by that id; id-less items and later duplicates are keyed by
// their position so every listed item can be opened.
func build(items []Item, logger *slog.Logger) *Catalog {
	c := &Catalog{
		items: items,
		index: make(map[ItemID]int, len(items)),
		keys:  make(map[string]int, len(items)),
	}
	for i := range c.items {
		c.items[i].key = ""
	}
	for i, it := range c.items {
		if it.ID == "" {
			continue
		}
		if _, dup := c.index[it.ID]; dup {
			if logger != nil {
				logger.Warn("duplicate catalog id, lookups keep the first", "id", it.ID)
			}
			continue
		}
		c.index[it.ID] = i
		c.keys[it.ID.String()] = i
		c.items[i].key = it.ID.String()
	}
	for i := range c.items {
		if c.items[i].key != "" {
			continue
		}
		key := "@" + strconv.Itoa(i)
		for {
			if _, taken := c.keys[key]; !taken {
				break
			}
			key = "@" + key
		}
		c.keys[key] = i
		c.items[i].key = key
	}
	return c
}

func failed(err error) *Catalog {
	return &Catalog{err: err}
}

// Items returns a copy of the items in source order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len is the number of loaded items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup finds the item holding id.
func (c *Catalog) Lookup(id ItemID) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Resolve finds the item carrying key, as returned by Item.Key.
func (c *Catalog) Resolve(key string) (Item, bool) {
	i, ok := c.keys[key]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Err returns the Load-Error, or nil when the catalog loaded.
func (c *Catalog) Err() error {
	return c.err
}

// Failed reports whether the catalog is in the Load-Error state.
func (c *Catalog) Failed() bool {
	return c.err != nil
}

// Message is the text shown on the error display.
func (c *Catalog) Message() string {
	switch {
	case c.err == nil:
		return ""
	case errors.Is(c.err, ErrNotSequence):
		return "Failed to load games data."
	default:
		return "An error occurred while loading games."
	}
}
