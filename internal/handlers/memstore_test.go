package handlers_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"feedback-app/internal/models"
	"feedback-app/internal/repository"
)

// memDB is an in-memory stand-in for mongo, shared by the three store
// views below. Together they mirror the repositories' observable behavior:
// (nil, nil) for absence, ErrDuplicateKey on unique-index violations,
// counter-issued feedback IDs, and the user delete cascading over the
// user's feedback.
type memDB struct {
	mu       sync.Mutex
	users    map[string]models.User
	feedback map[int64]models.Feedback
	sessions map[string]models.Session
	nextID   int64
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[string]models.User),
		feedback: make(map[int64]models.Feedback),
		sessions: make(map[string]models.Session),
	}
}

type memUserStore struct{ db *memDB }
type memFeedbackStore struct{ db *memDB }
type memSessionStore struct{ db *memDB }

// --- UserStore ---

func (s *memUserStore) Create(ctx context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[user.Username]; ok {
		return repository.ErrDuplicateKey
	}
	for _, existing := range s.db.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.db.users[user.Username] = *user
	return nil
}

func (s *memUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	user, ok := s.db.users[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *memUserStore) Delete(ctx context.Context, username string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for id, f := range s.db.feedback {
		if f.OwnerUsername == username {
			delete(s.db.feedback, id)
		}
	}
	delete(s.db.users, username)
	return nil
}

// --- FeedbackStore ---

func (s *memFeedbackStore) Create(ctx context.Context, feedback *models.Feedback) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.nextID++
	feedback.ID = s.db.nextID
	feedback.CreatedAt = time.Now()
	feedback.UpdatedAt = feedback.CreatedAt
	s.db.feedback[feedback.ID] = *feedback
	return nil
}

func (s *memFeedbackStore) FindByID(ctx context.Context, id int64) (*models.Feedback, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	feedback, ok := s.db.feedback[id]
	if !ok {
		return nil, nil
	}
	return &feedback, nil
}

func (s *memFeedbackStore) FindByOwner(ctx context.Context, username string) ([]models.Feedback, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var entries []models.Feedback
	for _, f := range s.db.feedback {
		if f.OwnerUsername == username {
			entries = append(entries, f)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (s *memFeedbackStore) Update(ctx context.Context, id int64, title, content string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	feedback, ok := s.db.feedback[id]
	if !ok {
		return nil // UpdateOne with no match is not an error
	}
	feedback.Title = title
	feedback.Content = content
	feedback.UpdatedAt = time.Now()
	s.db.feedback[id] = feedback
	return nil
}

func (s *memFeedbackStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.feedback, id)
	return nil
}

// --- SessionStore ---

func (s *memSessionStore) Create(ctx context.Context, session *models.Session) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	session.CreatedAt = time.Now()
	s.db.sessions[session.ID] = *session
	return nil
}

func (s *memSessionStore) FindByID(ctx context.Context, id string) (*models.Session, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	session, ok := s.db.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *memSessionStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.sessions, id)
	return nil
}

func (s *memSessionStore) DeleteByUsername(ctx context.Context, username string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for id, session := range s.db.sessions {
		if session.Username == username {
			delete(s.db.sessions, id)
		}
	}
	return nil
}
