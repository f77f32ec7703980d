package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"arcade/internal/viewmodel"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestLibrary_CardsAndCount(t *testing.T) {
	html := renderString(t, Library(viewmodel.LibraryFragment{
		Cards: []viewmodel.GameCard{{ID: "2", Key: "2", Title: "Block Puzzle", Thumbnail: "https://img.example/2.png"}},
		Count: 1,
		Query: "block",
	}))
	for _, want := range []string{"1 games found", "Block Puzzle", `action="/play/2"`, `referrerpolicy="no-referrer"`} {
		if !strings.Contains(html, want) {
			t.Errorf("library html missing %q", want)
		}
	}
	if strings.Contains(html, "No games found") {
		t.Error("empty state shown with results")
	}
}

func TestCard_PostsItsKey(t *testing.T) {
	html := renderString(t, Card(viewmodel.GameCard{Key: "@3", Title: "No Id"}))
	for _, want := range []string{`action="/play/@3"`, `hx-post="/play/@3"`} {
		if !strings.Contains(html, want) {
			t.Errorf("card html missing %q: %s", want, html)
		}
	}

	html = renderString(t, Card(viewmodel.GameCard{ID: "a b", Key: "a b", Title: "Spaced"}))
	if !strings.Contains(html, `action="/play/a%20b"`) {
		t.Errorf("key not path-escaped: %s", html)
	}
}

func TestLibrary_EmptyStateEscapesQuery(t *testing.T) {
	html := renderString(t, Library(viewmodel.LibraryFragment{Query: `<script>x</script>`}))
	if !strings.Contains(html, "No games found matching") {
		t.Error("empty state missing")
	}
	if strings.Contains(html, "<script>x</script>") {
		t.Error("query was not escaped")
	}
}

func TestPlayer_Frame(t *testing.T) {
	html := renderString(t, Player(viewmodel.PlayerFragment{ID: "2", Title: "Block Puzzle", IframeURL: "https://games.example/block"}))
	for _, want := range []string{
		`src="https://games.example/block"`,
		`allow="autoplay; fullscreen; pointer-lock"`,
		`sandbox="`,
		"allowfullscreen",
		"Back to Library",
		`action="/close"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("player html missing %q", want)
		}
	}
}

func TestPlayer_RejectsScriptURL(t *testing.T) {
	html := renderString(t, Player(viewmodel.PlayerFragment{Title: "x", IframeURL: "javascript:alert(1)"}))
	if strings.Contains(html, "javascript:") {
		t.Error("javascript: URL reached the iframe src")
	}
}

func TestFullscreenToggle_State(t *testing.T) {
	if html := renderString(t, FullscreenToggle(true)); !strings.Contains(html, `data-active="true"`) {
		t.Errorf("active toggle html %q", html)
	}
	if html := renderString(t, FullscreenToggle(false)); !strings.Contains(html, `data-active="false"`) {
		t.Errorf("inactive toggle html %q", html)
	}
}

func TestHeader_KeepsQuery(t *testing.T) {
	html := renderString(t, Header(viewmodel.Header{Query: `a"b`}))
	if !strings.Contains(html, `value="a&#34;b"`) {
		t.Errorf("query not escaped into value: %q", html)
	}
	if !strings.Contains(html, `id="fullscreen-slot"`) {
		t.Error("fullscreen slot missing")
	}
}

func TestMain_PicksView(t *testing.T) {
	player := renderString(t, Main(viewmodel.MainFragment{View: "player", Player: viewmodel.PlayerFragment{Title: "P"}}))
	if !strings.Contains(player, `class="player"`) {
		t.Error("player view not rendered")
	}
	library := renderString(t, Main(viewmodel.MainFragment{View: "library"}))
	if !strings.Contains(library, `class="library"`) {
		t.Error("library view not rendered")
	}
}
