package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"feedback-app/internal/models"
	"feedback-app/internal/slack"

	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	feedback FeedbackStore
	notifier slack.Notifier
}

func NewFeedbackHandler(feedback FeedbackStore, notifier slack.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
		notifier: notifier,
	}
}

// --- GET /users/{username}/feedback/add ---

func (h *FeedbackHandler) ShowAddForm(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !authorizeOwner(w, r, username) {
		return
	}
	renderPage(w, http.StatusOK, feedbackForm(addFeedbackAction(username), "Add Feedback", nil, "", ""))
}

// --- POST /users/{username}/feedback/add ---

func (h *FeedbackHandler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !authorizeOwner(w, r, username) {
		return
	}

	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, feedbackForm(addFeedbackAction(username), "Add Feedback",
			[]string{"Invalid form submission."}, "", ""))
		return
	}
	title := r.PostFormValue("title")
	content := r.PostFormValue("content")

	if errs := validateFeedback(title, content); len(errs) > 0 {
		renderPage(w, http.StatusBadRequest, feedbackForm(addFeedbackAction(username), "Add Feedback", errs, title, content))
		return
	}

	feedback := &models.Feedback{
		Title:         title,
		Content:       content,
		OwnerUsername: username,
	}
	if err := h.feedback.Create(r.Context(), feedback); err != nil {
		log.Printf("Error creating feedback: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Fire the notification in a background goroutine (non-blocking)
	go func() {
		message := formatFeedbackMessage(username, title)
		if err := h.notifier.Publish(context.Background(), message); err != nil {
			log.Printf("Error publishing notification: %v", err)
		}
	}()

	http.Redirect(w, r, "/users/"+url.PathEscape(username), http.StatusSeeOther)
}

// --- GET /feedback/{id}/edit ---

func (h *FeedbackHandler) ShowEditForm(w http.ResponseWriter, r *http.Request) {
	feedback := h.load(w, r)
	if feedback == nil {
		return
	}
	if !authorizeOwner(w, r, feedback.OwnerUsername) {
		return
	}
	renderPage(w, http.StatusOK, feedbackForm(editFeedbackAction(feedback.ID), "Edit Feedback", nil,
		feedback.Title, feedback.Content))
}

// --- POST /feedback/{id}/edit ---

func (h *FeedbackHandler) EditFeedback(w http.ResponseWriter, r *http.Request) {
	feedback := h.load(w, r)
	if feedback == nil {
		return
	}
	if !authorizeOwner(w, r, feedback.OwnerUsername) {
		return
	}

	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, feedbackForm(editFeedbackAction(feedback.ID), "Edit Feedback",
			[]string{"Invalid form submission."}, feedback.Title, feedback.Content))
		return
	}
	title := r.PostFormValue("title")
	content := r.PostFormValue("content")

	if errs := validateFeedback(title, content); len(errs) > 0 {
		renderPage(w, http.StatusBadRequest, feedbackForm(editFeedbackAction(feedback.ID), "Edit Feedback", errs, title, content))
		return
	}

	if err := h.feedback.Update(r.Context(), feedback.ID, title, content); err != nil {
		log.Printf("Error updating feedback %d: %v", feedback.ID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users/"+url.PathEscape(feedback.OwnerUsername), http.StatusSeeOther)
}

// --- POST /feedback/{id}/delete ---

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	feedback := h.load(w, r)
	if feedback == nil {
		return
	}
	if !authorizeOwner(w, r, feedback.OwnerUsername) {
		return
	}

	if err := h.feedback.Delete(r.Context(), feedback.ID); err != nil {
		log.Printf("Error deleting feedback %d: %v", feedback.ID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users/"+url.PathEscape(feedback.OwnerUsername), http.StatusSeeOther)
}

// --- Helpers ---

// load resolves the {id} URL param to a feedback record, writing a 404 or
// 500 itself when it can't. A non-numeric id is a plain not-found, same as
// an unknown one.
func (h *FeedbackHandler) load(w http.ResponseWriter, r *http.Request) *models.Feedback {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "feedback not found", http.StatusNotFound)
		return nil
	}

	feedback, err := h.feedback.FindByID(r.Context(), id)
	if err != nil {
		log.Printf("Error finding feedback %d: %v", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return nil
	}
	if feedback == nil {
		http.Error(w, "feedback not found", http.StatusNotFound)
		return nil
	}
	return feedback
}

func addFeedbackAction(username string) string {
	return "/users/" + url.PathEscape(username) + "/feedback/add"
}

func editFeedbackAction(id int64) string {
	return fmt.Sprintf("/feedback/%d/edit", id)
}

func validateFeedback(title, content string) []string {
	var errs []string
	if title == "" || len(title) > 100 {
		errs = append(errs, "Title must be between 1 and 100 characters.")
	}
	if content == "" {
		errs = append(errs, "Content is required.")
	}
	return errs
}

func formatFeedbackMessage(username, title string) string {
	return "📝 *New Feedback Posted*\n" +
		"User: `" + username + "`\n" +
		"Title: " + title
}
