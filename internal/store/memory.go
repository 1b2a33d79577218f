package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/aifa-auth/models"
	"github.com/google/uuid"
)

// memoryUserRepository is the in-process reference implementation of
// [UserRepository]. It backs tests and database-less development setups and
// honours the same sentinel-error contract as the PostgreSQL repository.
type memoryUserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byEmail map[string]*models.User
	byID    map[int64]*models.User
}

// NewMemoryUserRepository constructs an empty in-memory [UserRepository].
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		nextID:  1,
		byEmail: make(map[string]*models.User),
		byID:    make(map[int64]*models.User),
	}
}

func (r *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return models.User{}, ErrEmailAlreadyExists
	}

	user.UserID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := user
	r.byEmail[user.Email] = &stored
	r.byID[user.UserID] = &stored

	return user, nil
}

func (r *memoryUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return *user, nil
}

func (r *memoryUserRepository) UpdateLastLogin(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return ErrNoUserWasFound
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	return nil
}

func (r *memoryUserRepository) UpdatePasswordHash(_ context.Context, userID int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return ErrNoUserWasFound
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	return nil
}

// memorySessionRepository is the in-process reference implementation of
// [SessionRepository].
type memorySessionRepository struct {
	mu      sync.RWMutex
	byToken map[string]*models.Session
}

// NewMemorySessionRepository constructs an empty in-memory
// [SessionRepository].
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		byToken: make(map[string]*models.Session),
	}
}

func (r *memorySessionRepository) CreateSession(_ context.Context, session models.Session) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.SessionID = uuid.NewString()
	session.CreatedAt = time.Now()

	stored := session
	r.byToken[session.Token] = &stored

	return session, nil
}

func (r *memorySessionRepository) FindSessionByToken(_ context.Context, token string) (models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.byToken[token]
	if !ok {
		return models.Session{}, ErrNoSessionWasFound
	}
	if session.Expired(time.Now()) {
		return models.Session{}, ErrSessionExpired
	}

	return *session, nil
}

func (r *memorySessionRepository) DeleteSession(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byToken, token)
	return nil
}

func (r *memorySessionRepository) DeleteSessionsForUser(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for token, session := range r.byToken {
		if session.UserID == userID {
			delete(r.byToken, token)
			removed++
		}
	}

	return removed, nil
}

func (r *memorySessionRepository) DeleteExpiredSessions(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for token, session := range r.byToken {
		if !session.ExpiresAt.After(before) {
			delete(r.byToken, token)
			removed++
		}
	}

	return removed, nil
}
