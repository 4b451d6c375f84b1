package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/useractivity/analytics/internal/core/domain"
)

// RecordSessionInput carries a parsed login/logout interval for one user.
// Timestamps arrive already parsed; the engine never sees raw strings.
type RecordSessionInput struct {
	UserID     string
	LoginTime  time.Time
	LogoutTime time.Time
}

// YearMonth selects one calendar month for the monthly activity metric.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Contains reports whether t's civil date falls inside the month.
func (ym YearMonth) Contains(t time.Time) bool {
	y, m, _ := t.Date()
	return y == ym.Year && m == ym.Month
}

// Valid reports whether the month component is a real calendar month.
func (ym YearMonth) Valid() bool {
	return ym.Month >= time.January && ym.Month <= time.December
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// AnalyticsService defines the session-analytics engine operations.
type AnalyticsService interface {
	// RegisterUser creates a new user. Any failure is an error, never a false
	// return: blank id/name → domain.ErrInvalidArgument, existing id →
	// domain.ErrDuplicateUser.
	RegisterUser(ctx context.Context, userID, name string) (bool, error)

	// RecordSession appends a session to an existing user's history.
	RecordSession(ctx context.Context, in RecordSessionInput) error

	// TotalActivityTime returns the user's cumulative activity in whole
	// minutes. Fails with domain.ErrNoSessions when the user has no history.
	TotalActivityTime(ctx context.Context, userID string) (int64, error)

	// FindInactiveUsers returns, in registration order, the ids of users whose
	// most recently recorded session ended more than days days ago. Users
	// without sessions are never included.
	FindInactiveUsers(ctx context.Context, days int) ([]string, error)

	// MonthlyActivityMetric maps each civil date (YYYY-MM-DD) within month to
	// the minutes of activity from sessions logged in on that date. The result
	// is never nil.
	MonthlyActivityMetric(ctx context.Context, userID string, month YearMonth) (map[string]int64, error)

	// UserSessions returns the user's full session history in insertion order.
	UserSessions(ctx context.Context, userID string) ([]domain.Session, error)
}
