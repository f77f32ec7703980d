// Package components renders the page fragments that htmx swaps in place.
package components

import (
	"net/url"

	"github.com/a-h/templ"
)

// FrameAllow lists the capabilities delegated to the embedded game.
const FrameAllow = "autoplay; fullscreen; pointer-lock"

// FrameSandbox is the sandbox token list of the embedded game.
const FrameSandbox = "allow-scripts allow-same-origin allow-pointer-lock"

func playURL(key string) templ.SafeURL {
	return templ.URL("/play/" + url.PathEscape(key))
}

func toggleState(active bool) string {
	if active {
		return "true"
	}
	return "false"
}

func toggleLabel(active bool) string {
	if active {
		return "Exit Fullscreen"
	}
	return "Toggle Fullscreen"
}
