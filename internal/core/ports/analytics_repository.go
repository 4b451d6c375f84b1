package ports

import (
	"context"

	"github.com/useractivity/analytics/internal/core/domain"
)

// RegistryStats is a point-in-time snapshot of the registry size.
type RegistryStats struct {
	Users    int
	Sessions int
}

// AnalyticsRepository is the user/session registry. Implementations must make
// every method atomic with respect to the registry state: a read running
// concurrently with an append sees either the pre- or post-append history,
// never a partial one.
type AnalyticsRepository interface {
	// CreateUser inserts a user with an empty session history. Returns
	// domain.ErrDuplicateUser when the id is already registered.
	CreateUser(ctx context.Context, user domain.User) error

	// AppendSession appends a session to its user's history, preserving call
	// order. Returns domain.ErrUserNotFound when the user does not exist.
	AppendSession(ctx context.Context, session domain.Session) error

	// UserSessions returns a copy of the user's full session history in
	// insertion order (empty, never nil, when the user has no sessions), or
	// domain.ErrUserNotFound.
	UserSessions(ctx context.Context, userID string) ([]domain.Session, error)

	// ListUsers returns all users in registration order.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// Stats reports current registry counts.
	Stats(ctx context.Context) RegistryStats
}
