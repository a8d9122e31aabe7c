package handlers

import (
	"net/http"
	"time"

	"feedback-app/internal/middleware"
	"feedback-app/internal/slack"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires every endpoint to its handler. Global middleware
// (logging, recovery, CORS) is the caller's concern.
func NewRouter(users UserStore, feedback FeedbackStore, sessions SessionStore, notifier slack.Notifier, sessionTTL time.Duration) *chi.Mux {
	authHandler := NewAuthHandler(users, sessions, sessionTTL)
	userHandler := NewUserHandler(users, feedback, sessions)
	feedbackHandler := NewFeedbackHandler(feedback, notifier)

	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/register", http.StatusFound)
	})

	// Public routes (no session required)
	r.Get("/register", authHandler.ShowRegister)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.Login)

	// Protected routes (live session required)
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))

		r.Get("/logout", authHandler.Logout)
		r.Get("/users/{username}", userHandler.ShowProfile)
		r.Post("/users/{username}/delete", userHandler.DeleteUser)
		r.Get("/users/{username}/feedback/add", feedbackHandler.ShowAddForm)
		r.Post("/users/{username}/feedback/add", feedbackHandler.AddFeedback)
		r.Get("/feedback/{id}/edit", feedbackHandler.ShowEditForm)
		r.Post("/feedback/{id}/edit", feedbackHandler.EditFeedback)
		r.Post("/feedback/{id}/delete", feedbackHandler.DeleteFeedback)
	})

	return r
}
