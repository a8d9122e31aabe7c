package handlers

import (
	"context"

	"feedback-app/internal/models"
)

// Store interfaces cover exactly what the handlers call. The mongo
// repositories satisfy them; tests swap in an in-memory implementation.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, username string) error
}

type FeedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	FindByID(ctx context.Context, id int64) (*models.Feedback, error)
	FindByOwner(ctx context.Context, username string) ([]models.Feedback, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUsername(ctx context.Context, username string) error
}
