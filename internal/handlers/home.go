package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"arcade/internal/catalog"
	"arcade/internal/portal"
	"arcade/internal/viewmodel"
	"arcade/views/components"
	"arcade/views/pages"
)

const pageTitle = "Unblocked Games"

// HomeHandler serves the library and player views and their mutators.
type HomeHandler struct {
	sessions
	logger *slog.Logger
}

// NewHomeHandler builds the page handler. secure marks the session cookie Secure.
func NewHomeHandler(store *portal.Store, logger *slog.Logger, secure bool) *HomeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HomeHandler{sessions: sessions{store: store, secure: secure}, logger: logger}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/main", h.mainFragment)
	r.Get("/api/state", h.state)
	r.Post("/search", h.search)
	r.Post("/play/{key}", h.play)
	r.Post("/back", h.clear((*portal.Controller).Back))
	r.Post("/close", h.clear((*portal.Controller).Close))
	r.Post("/brand", h.clear((*portal.Controller).BrandClick))
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	snap := v.Controller.Snapshot()
	if snap.View() == portal.ViewError {
		renderStatus(w, r, http.StatusInternalServerError, pages.ErrorPage(buildErrorPage(snap)))
		return
	}
	render(w, r, pages.GamePage(buildPage(snap, time.Now())))
}

func (h *HomeHandler) mainFragment(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	h.respondMain(w, r, v.Controller.Snapshot())
}

func (h *HomeHandler) state(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	snap := v.Controller.Snapshot()
	status := http.StatusOK
	if snap.View() == portal.ViewError {
		status = http.StatusInternalServerError
	}
	writeJSONStatus(w, status, snap)
}

func (h *HomeHandler) search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v := h.visitor(w, r)
	v.Controller.SetQuery(r.FormValue("q"))
	h.store.Publish(v.ID, portal.EventMain)
	h.respondMain(w, r, v.Controller.Snapshot())
}

func (h *HomeHandler) play(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	key := chi.URLParam(r, "key")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	if !v.Controller.SelectKey(key) {
		if v.Controller.View() == portal.ViewError {
			h.respondMain(w, r, v.Controller.Snapshot())
			return
		}
		http.NotFound(w, r)
		return
	}
	h.logger.Debug("game selected", "visitor", v.ID, "key", key)
	h.store.Publish(v.ID, portal.EventMain)
	h.respondMain(w, r, v.Controller.Snapshot())
}

func (h *HomeHandler) clear(action func(*portal.Controller)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := h.visitor(w, r)
		action(v.Controller)
		h.store.Publish(v.ID, portal.EventMain)
		h.respondMain(w, r, v.Controller.Snapshot())
	}
}

// respondMain answers htmx with the #main fragment and plain forms with a
// redirect back to the page.
func (h *HomeHandler) respondMain(w http.ResponseWriter, r *http.Request, snap portal.Snapshot) {
	if snap.View() == portal.ViewError {
		if isHTMX(r) {
			w.Header().Set("Hx-Refresh", "true")
		}
		renderStatus(w, r, http.StatusInternalServerError, pages.ErrorPage(buildErrorPage(snap)))
		return
	}
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, components.Main(buildMainFragment(snap)))
}

func buildPage(snap portal.Snapshot, now time.Time) viewmodel.Page {
	title := pageTitle
	if snap.Selection != nil && snap.Selection.Title != "" {
		title = snap.Selection.Title + " - " + pageTitle
	}
	return viewmodel.Page{
		Title:  title,
		Header: buildHeader(snap),
		Main:   buildMainFragment(snap),
		Year:   now.Year(),
	}
}

func buildHeader(snap portal.Snapshot) viewmodel.Header {
	return viewmodel.Header{
		Query:      snap.Query,
		Fullscreen: snap.Fullscreen,
	}
}

func buildMainFragment(snap portal.Snapshot) viewmodel.MainFragment {
	data := viewmodel.MainFragment{View: string(snap.View())}
	if snap.Selection != nil {
		data.Player = viewmodel.PlayerFragment{
			ID:        snap.Selection.ID.String(),
			Title:     snap.Selection.Title,
			IframeURL: snap.Selection.IframeURL,
		}
		return data
	}
	data.Library = viewmodel.LibraryFragment{
		Cards: toGameCards(snap.Items),
		Count: len(snap.Items),
		Query: snap.Query,
	}
	return data
}

func buildErrorPage(snap portal.Snapshot) viewmodel.ErrorPage {
	return viewmodel.ErrorPage{Title: pageTitle, Message: snap.LoadError}
}

func toGameCards(items []catalog.Item) []viewmodel.GameCard {
	out := make([]viewmodel.GameCard, 0, len(items))
	for _, it := range items {
		out = append(out, viewmodel.GameCard{
			ID:        it.ID.String(),
			Key:       it.Key(),
			Title:     it.Title,
			Thumbnail: it.Thumbnail,
		})
	}
	return out
}
