// Package memory implements the user/session registry as a mutex-guarded
// in-memory store. The registry is the single source of truth for both
// collections and is safe for concurrent use; at the expected scale one
// global lock is sufficient.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/useractivity/analytics/internal/core/domain"
	"github.com/useractivity/analytics/internal/core/ports"
)

type userRecord struct {
	user     domain.User
	sessions []domain.Session
}

// AnalyticsRepository holds users keyed by id plus the registration order,
// which downstream queries rely on for stable results.
type AnalyticsRepository struct {
	mu    sync.RWMutex
	users map[string]*userRecord
	order []string
}

func NewAnalyticsRepository() *AnalyticsRepository {
	return &AnalyticsRepository{
		users: make(map[string]*userRecord),
	}
}

// CreateUser inserts a user with an empty session history. The existence
// check and the insert happen under one write lock, so two concurrent
// registrations of the same id cannot both succeed.
func (r *AnalyticsRepository) CreateUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("create user %q: %w", user.ID, domain.ErrDuplicateUser)
	}
	r.users[user.ID] = &userRecord{user: user}
	r.order = append(r.order, user.ID)
	return nil
}

// FindUser returns a copy of the stored user.
func (r *AnalyticsRepository) FindUser(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("find user %q: %w", id, domain.ErrUserNotFound)
	}
	user := rec.user
	return &user, nil
}

// AppendSession appends to the owning user's history in call order.
func (r *AnalyticsRepository) AppendSession(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[session.UserID]
	if !ok {
		return fmt.Errorf("append session for %q: %w", session.UserID, domain.ErrUserNotFound)
	}
	rec.sessions = append(rec.sessions, session)
	return nil
}

// UserSessions returns a copy of the user's history so callers iterate
// without holding the registry lock.
func (r *AnalyticsRepository) UserSessions(_ context.Context, userID string) ([]domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("sessions for %q: %w", userID, domain.ErrUserNotFound)
	}
	sessions := make([]domain.Session, len(rec.sessions))
	copy(sessions, rec.sessions)
	return sessions, nil
}

// ListUsers returns all users in registration order.
func (r *AnalyticsRepository) ListUsers(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.users[id].user)
	}
	return users, nil
}

// Stats reports current registry counts.
func (r *AnalyticsRepository) Stats(_ context.Context) ports.RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := ports.RegistryStats{Users: len(r.users)}
	for _, rec := range r.users {
		stats.Sessions += len(rec.sessions)
	}
	return stats
}
