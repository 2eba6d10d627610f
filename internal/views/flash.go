package views

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

const flashSession = "tracker-flash"

type flashKind string

const (
	flashSuccess flashKind = "success"
	flashError   flashKind = "error"
)

type flash struct {
	Kind    flashKind
	Message string
}

func newFlashStore(secret string, secure bool) *sessions.CookieStore {
	key := sha256.Sum256([]byte(secret))
	st := sessions.NewCookieStore(key[:])
	st.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return st
}

// addFlash deja un toast para el próximo render. Un error de cookie no corta el flujo.
func (h *Handler) addFlash(w http.ResponseWriter, r *http.Request, kind flashKind, msg string) {
	sess, err := h.sessions.Get(r, flashSession)
	if err != nil && sess == nil {
		h.log.Warn("flash session unavailable", map[string]any{"error": err})
		return
	}
	sess.AddFlash(msg, string(kind))
	if err := sess.Save(r, w); err != nil {
		h.log.Warn("flash save failed", map[string]any{"error": err})
	}
}

// popFlashes devuelve los toasts pendientes y los borra. Llamar antes de escribir el body.
func (h *Handler) popFlashes(w http.ResponseWriter, r *http.Request) []flash {
	sess, err := h.sessions.Get(r, flashSession)
	if err != nil && sess == nil {
		return nil
	}

	var out []flash
	for _, kind := range []flashKind{flashSuccess, flashError} {
		for _, f := range sess.Flashes(string(kind)) {
			if msg, ok := f.(string); ok {
				out = append(out, flash{Kind: kind, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		if err := sess.Save(r, w); err != nil {
			h.log.Warn("flash save failed", map[string]any{"error": err})
		}
	}
	return out
}
