package httpapi

import (
	"context"
	"net/http"
	"time"

	"foodcart/restaurateur-svc/internal/service"
)

const (
	sessionCookie = "manager_session"
	loginURL      = "/manager/login/"
)

type ctxKey string

const usernameKey ctxKey = "username"

func usernameFrom(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}

// authHandler lets a request through only with a valid session of a staff
// user, anyone else is sent to the login page.
type authHandler struct {
	next http.Handler
	auth service.AuthServiceInterface
}

func (h authHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		http.Redirect(w, r, loginURL, http.StatusFound)
		return
	}

	claims, err := h.auth.ParseToken(cookie.Value)
	if err != nil || !claims.IsStaff {
		http.Redirect(w, r, loginURL, http.StatusFound)
		return
	}

	ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
	h.next.ServeHTTP(w, r.WithContext(ctx))
}

func (h *Handler) mustStaff(next http.HandlerFunc) http.Handler {
	return authHandler{next: next, auth: h.Auth}
}

func setSession(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
