package handlers

import (
	"net/http"

	"arcade/internal/portal"
)

const sessionCookieName = "arcade_session"

// sessions resolves the visitor behind a request.
type sessions struct {
	store  *portal.Store
	secure bool
}

// visitor returns the request's visitor, starting a session when the cookie
// is missing or stale.
func (s sessions) visitor(w http.ResponseWriter, r *http.Request) *portal.Visitor {
	id := sessionIDFromCookie(r)
	v, _ := s.store.Visitor(id)
	if v.ID != id {
		s.setCookie(w, v.ID)
	}
	return v
}

// existing returns the visitor only if the session is already known.
func (s sessions) existing(r *http.Request) (*portal.Visitor, bool) {
	id := sessionIDFromCookie(r)
	if id == "" {
		return nil, false
	}
	return s.store.Lookup(id)
}

func sessionIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setCookie has no expiry: the session ends with the browser.
func (s sessions) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
