package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"arcade/internal/portal"
	"arcade/views/components"
)

const keepAliveInterval = 25 * time.Second

// StreamHandler pushes fresh fragments to every open page of a visitor.
type StreamHandler struct {
	sessions
}

func NewStreamHandler(store *portal.Store) *StreamHandler {
	return &StreamHandler{sessions: sessions{store: store}}
}

func (h *StreamHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stream", h.stream)
}

func (h *StreamHandler) stream(w http.ResponseWriter, r *http.Request) {
	v, ok := h.existing(r)
	if !ok {
		http.Error(w, "no session", http.StatusNotFound)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	hub, ok := h.store.Broadcaster(v.ID)
	if !ok {
		http.Error(w, "no session", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sendHeader := func() {
		snap := v.Controller.Snapshot()
		writeSSE(w, portal.EventHeader, renderToString(r, components.FullscreenToggle(snap.Fullscreen)))
		flusher.Flush()
	}
	sendMain := func() {
		snap := v.Controller.Snapshot()
		if snap.View() == portal.ViewError {
			return
		}
		writeSSE(w, portal.EventMain, renderToString(r, components.Main(buildMainFragment(snap))))
		flusher.Flush()
	}

	sendHeader()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				return
			}
			switch event {
			case portal.EventHeader:
				sendHeader()
			case portal.EventMain:
				sendMain()
			}
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}
