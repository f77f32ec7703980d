package tui

import "arcade/internal/catalog"

type row struct {
	index int
	item  catalog.Item
}

// visible returns at most height rows around cursor, keeping it on screen.
func visible(items []catalog.Item, cursor, height int) []row {
	if height <= 0 || len(items) == 0 {
		return nil
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := start + height
	if end > len(items) {
		end = len(items)
	}
	rows := make([]row, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, row{index: i, item: items[i]})
	}
	return rows
}
