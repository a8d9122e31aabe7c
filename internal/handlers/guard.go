package handlers

import (
	"net/http"

	"feedback-app/internal/middleware"
)

// authorizeOwner enforces the single authorization rule: the request must
// carry a session identity and it must equal the resource's owner. On
// violation the request is rejected here, before any repository mutation.
func authorizeOwner(w http.ResponseWriter, r *http.Request, owner string) bool {
	identity := middleware.GetUsername(r.Context())
	if identity == "" || identity != owner {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}
