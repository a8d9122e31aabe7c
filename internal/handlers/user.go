package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users    UserStore
	feedback FeedbackStore
	sessions SessionStore
}

func NewUserHandler(users UserStore, feedback FeedbackStore, sessions SessionStore) *UserHandler {
	return &UserHandler{
		users:    users,
		feedback: feedback,
		sessions: sessions,
	}
}

// --- GET /users/{username} ---

func (h *UserHandler) ShowProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !authorizeOwner(w, r, username) {
		return
	}

	user, err := h.users.FindByUsername(r.Context(), username)
	if err != nil {
		log.Printf("Error finding user: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	entries, err := h.feedback.FindByOwner(r.Context(), username)
	if err != nil {
		log.Printf("Error listing feedback for %s: %v", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	renderPage(w, http.StatusOK, profilePage(user, entries))
}

// --- POST /users/{username}/delete ---

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !authorizeOwner(w, r, username) {
		return
	}

	// Cascades to the user's feedback inside one transaction.
	if err := h.users.Delete(r.Context(), username); err != nil {
		log.Printf("Error deleting user %s: %v", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// The account is gone, so every session of it is dead weight.
	if err := h.sessions.DeleteByUsername(r.Context(), username); err != nil {
		log.Printf("Error deleting sessions for %s: %v", username, err)
	}

	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
