package ports

import (
	"context"

	"github.com/useractivity/analytics/internal/core/domain"
)

// StatusService derives summary signals from data held by the analytics
// engine; it owns no state of its own.
type StatusService interface {
	// UserStatus classifies the user's total activity time into a status
	// band, propagating any engine error unchanged.
	UserStatus(ctx context.Context, userID string) (domain.UserStatus, error)

	// UserLastSessionDate returns the civil date (YYYY-MM-DD) of the logout of
	// the user's last recorded session. ok is false when the user exists but
	// has no sessions.
	UserLastSessionDate(ctx context.Context, userID string) (date string, ok bool, err error)
}
