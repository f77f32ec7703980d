package viewmodel

// Header holds data for the sticky page header.
type Header struct {
	Query      string
	Fullscreen bool
}

// GameCard is one tile of the library grid.
type GameCard struct {
	ID        string
	Key       string // path segment that opens this exact card
	Title     string
	Thumbnail string
}

// LibraryFragment holds data for the grid view.
type LibraryFragment struct {
	Cards []GameCard
	Count int
	Query string
}

// PlayerFragment holds data for the embedded player view.
type PlayerFragment struct {
	ID        string
	Title     string
	IframeURL string
}

// MainFragment is whichever of the two views is active.
type MainFragment struct {
	View    string
	Library LibraryFragment
	Player  PlayerFragment
}

// Page holds data for the full document.
type Page struct {
	Title  string
	Header Header
	Main   MainFragment
	Year   int
}

// ErrorPage holds the load error shown instead of the app.
type ErrorPage struct {
	Title   string
	Message string
}
