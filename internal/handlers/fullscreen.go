package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"arcade/internal/fullscreen"
	"arcade/internal/portal"
)

// FullscreenHandler connects the page's Fullscreen API to the visitor's
// fullscreen session.
type FullscreenHandler struct {
	sessions
	logger *slog.Logger
}

func NewFullscreenHandler(store *portal.Store, logger *slog.Logger, secure bool) *FullscreenHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FullscreenHandler{sessions: sessions{store: store, secure: secure}, logger: logger}
}

func (h *FullscreenHandler) RegisterRoutes(r chi.Router) {
	r.Route("/fullscreen", func(r chi.Router) {
		r.Post("/toggle", h.toggle)
		r.Post("/state", h.report)
	})
}

type toggleResponse struct {
	Command      fullscreen.Command `json:"command"`
	IsFullscreen bool               `json:"isFullscreen"`
}

// toggle flips the session and hands the resulting command to the page,
// which runs it while the click still counts as a user gesture.
func (h *FullscreenHandler) toggle(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.Controller.ToggleFullscreen()
	cmd := v.Bridge.TakeCommand(r.FormValue("page"))
	h.store.Publish(v.ID, portal.EventHeader)
	writeJSON(w, toggleResponse{
		Command:      cmd,
		IsFullscreen: v.Controller.Snapshot().Fullscreen,
	})
}

// report receives fullscreenchange and fullscreenerror outcomes from the page.
func (h *FullscreenHandler) report(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	active, err := strconv.ParseBool(r.FormValue("active"))
	if err != nil {
		http.Error(w, "active must be a boolean", http.StatusBadRequest)
		return
	}
	supported := true
	if raw := r.FormValue("supported"); raw != "" {
		if supported, err = strconv.ParseBool(raw); err != nil {
			http.Error(w, "supported must be a boolean", http.StatusBadRequest)
			return
		}
	}
	v := h.visitor(w, r)
	if reason := r.FormValue("error"); reason != "" {
		h.logger.Warn("fullscreen request rejected by browser", "visitor", v.ID, "reason", reason)
	}
	page := r.FormValue("page")
	if v.Bridge.Report(page, active, supported) {
		h.store.Publish(v.ID, portal.EventHeader)
	} else {
		h.logger.Debug("fullscreen report from background page ignored", "visitor", v.ID, "page", page)
	}
	w.WriteHeader(http.StatusNoContent)
}
