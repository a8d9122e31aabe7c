package middleware

import (
	"context"
	"log"
	"net/http"

	"feedback-app/internal/models"
)

// SessionCookie is the name of the cookie carrying the opaque session ID.
const SessionCookie = "session_id"

type contextKey string

const usernameKey contextKey = "username"

// SessionStore is the slice of the session repository the middleware needs.
type SessionStore interface {
	FindByID(ctx context.Context, id string) (*models.Session, error)
}

// SessionAuth resolves the session cookie against the server-side session
// store and puts the session's username into the request context. The
// lookup happens on every request — a request without a live session is
// rejected before its handler runs.
func SessionAuth(sessions SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			session, err := sessions.FindByID(r.Context(), cookie.Value)
			if err != nil {
				log.Printf("Error resolving session: %v", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			// TTL reaping is lazy, so an expired session can still be
			// found — treat it the same as a missing one.
			if session == nil || session.IsExpired() {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, session.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsername returns the authenticated username from the request context,
// or "" for an anonymous request.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}
