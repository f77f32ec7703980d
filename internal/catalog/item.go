package catalog

import (
	"bytes"
	"encoding/json"
)

// ItemID identifies an item for the lifetime of the process. The source may
// encode it as a JSON string or number; both are kept as their text.
type ItemID string

// UnmarshalJSON accepts strings and numbers. Anything else leaves the id empty.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*id = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = ItemID(n.String())
	default:
		*id = ""
	}
	return nil
}

func (id ItemID) String() string {
	return string(id)
}

// Item is one playable entry of the catalog.
type Item struct {
	ID        ItemID `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	IframeURL string `json:"iframeUrl"`

	titled bool
	key    string
}

// Key addresses the item within its catalog. It is the id for the first
// item holding it and a position key otherwise. Items not taken from a
// catalog fall back to their id.
func (it Item) Key() string {
	if it.key != "" {
		return it.key
	}
	return it.ID.String()
}

// HasTitle reports whether the source carried a string title for the item.
func (it Item) HasTitle() bool {
	return it.titled
}

// decodeItem never fails: fields with an unexpected shape are left empty,
// and elements that are not objects become an empty item.
func decodeItem(raw json.RawMessage) Item {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Item{}
	}
	var it Item
	if v, ok := fields["id"]; ok {
		_ = it.ID.UnmarshalJSON(v)
	}
	if v, ok := fields["title"]; ok {
		if err := json.Unmarshal(v, &it.Title); err == nil && !isNull(v) {
			it.titled = true
		}
	}
	if v, ok := fields["thumbnail"]; ok {
		_ = json.Unmarshal(v, &it.Thumbnail)
	}
	if v, ok := fields["iframeUrl"]; ok {
		_ = json.Unmarshal(v, &it.IframeURL)
	}
	return it
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// NewItem builds a titled item. Used by tests and by callers that assemble
// catalogs in code.
func NewItem(id ItemID, title, thumbnail, iframeURL string) Item {
	return Item{ID: id, Title: title, Thumbnail: thumbnail, IframeURL: iframeURL, titled: true}
}

// UnmarshalJSON decodes one catalog element with the same leniency as Load.
func (it *Item) UnmarshalJSON(raw []byte) error {
	*it = decodeItem(raw)
	return nil
}
