package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"feedback-app/internal/auth"
	"feedback-app/internal/middleware"
	"feedback-app/internal/models"
	"feedback-app/internal/repository"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

type AuthHandler struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewAuthHandler(users UserStore, sessions SessionStore, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// --- GET /register ---

func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, registerForm(nil, "", "", "", ""))
}

// --- POST /register ---

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, registerForm([]string{"Invalid form submission."}, "", "", "", ""))
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	email := r.PostFormValue("email")
	firstName := r.PostFormValue("first_name")
	lastName := r.PostFormValue("last_name")

	if errs := validateRegistration(username, password, email, firstName, lastName); len(errs) > 0 {
		renderPage(w, http.StatusBadRequest, registerForm(errs, username, email, firstName, lastName))
		return
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			renderPage(w, http.StatusConflict,
				registerForm([]string{"Username or email is already taken."}, username, email, firstName, lastName))
			return
		}
		log.Printf("Error creating user: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.startSession(w, r, username); err != nil {
		log.Printf("Error creating session: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Welcome email is best-effort and never blocks registration
	go sendWelcomeEmail(email, user.FullName())

	http.Redirect(w, r, "/users/"+url.PathEscape(username), http.StatusSeeOther)
}

// --- GET /login ---

func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if username := h.currentUsername(r); username != "" {
		http.Redirect(w, r, "/users/"+url.PathEscape(username), http.StatusFound)
		return
	}
	renderPage(w, http.StatusOK, loginForm(nil, ""))
}

// --- POST /login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, loginForm([]string{"Invalid form submission."}, ""))
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.authenticate(r.Context(), username, password)
	if err != nil {
		log.Printf("Error authenticating %q: %v", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		renderPage(w, http.StatusUnauthorized, loginForm([]string{"Invalid username/password."}, username))
		return
	}

	if err := h.startSession(w, r, user.Username); err != nil {
		log.Printf("Error creating session: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users/"+url.PathEscape(user.Username), http.StatusSeeOther)
}

// --- GET /logout ---

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.Printf("Error deleting session: %v", err)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// --- Helpers ---

// authenticate returns the user when the password checks out, nil when the
// username is unknown or the password is wrong — absence, not an error.
// Which of the two happened is deliberately not distinguishable.
func (h *AuthHandler) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := h.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// startSession stores a fresh server-side session and hands the client its
// opaque ID in a cookie.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, username string) error {
	session := &models.Session{
		ID:        uuid.New().String(),
		Username:  username,
		ExpiresAt: time.Now().Add(h.sessionTTL),
	}
	if err := h.sessions.Create(r.Context(), session); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
	return nil
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// currentUsername peeks at the session on routes that sit outside the
// session middleware, so an already-logged-in visitor can be redirected.
func (h *AuthHandler) currentUsername(r *http.Request) string {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	session, err := h.sessions.FindByID(r.Context(), cookie.Value)
	if err != nil || session == nil || session.IsExpired() {
		return ""
	}
	return session.Username
}

func validateRegistration(username, password, email, firstName, lastName string) []string {
	var errs []string
	if username == "" || len(username) > 20 {
		errs = append(errs, "Username must be between 1 and 20 characters.")
	}
	// bcrypt only hashes the first 72 bytes and rejects anything longer,
	// so the bound has to hold here for hashing to succeed.
	if password == "" || len(password) > 72 {
		errs = append(errs, "Password must be between 1 and 72 characters.")
	}
	if email == "" || len(email) > 50 || !strings.Contains(email, "@") {
		errs = append(errs, "A valid email of at most 50 characters is required.")
	}
	if firstName == "" || len(firstName) > 30 {
		errs = append(errs, "First name must be between 1 and 30 characters.")
	}
	if lastName == "" || len(lastName) > 30 {
		errs = append(errs, "Last name must be between 1 and 30 characters.")
	}
	return errs
}

func sendWelcomeEmail(to, fullName string) {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("FROM_EMAIL")

	if apiKey == "" {
		log.Printf("📧 [Dev Mode] Skipping welcome email for %s (RESEND_API_KEY not set)", to)
		return
	}

	client := resend.NewClient(apiKey)

	params := &resend.SendEmailRequest{
		From:    fromEmail,
		To:      []string{to},
		Subject: "Welcome to Feedback!",
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Welcome, %s! 🎉</h2>
				<p>Your account was created successfully. You can now post and manage your feedback.</p>
				<p style="color: #aaa; font-size: 12px;">
					If you didn't create this account, please contact support.
				</p>
			</div>
		`, html.EscapeString(fullName)),
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		log.Printf("Error sending welcome email: %v", err)
		return
	}
	log.Printf("📧 Welcome email sent (ID: %s)", sent.Id)
}
