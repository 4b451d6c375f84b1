package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/useractivity/analytics/internal/core/domain"
	"github.com/useractivity/analytics/internal/core/ports"
)

// StatusService derives a coarse activity label and the last session date
// from data already held by the analytics engine. It is stateless.
type StatusService struct {
	analytics ports.AnalyticsService
	logger    zerolog.Logger
}

func NewStatusService(analytics ports.AnalyticsService, logger zerolog.Logger) *StatusService {
	return &StatusService{analytics: analytics, logger: logger}
}

// UserStatus classifies the user's total activity time. Errors from the
// underlying total-activity query propagate unchanged.
func (s *StatusService) UserStatus(ctx context.Context, userID string) (domain.UserStatus, error) {
	total, err := s.analytics.TotalActivityTime(ctx, userID)
	if err != nil {
		return "", err
	}
	return domain.StatusForMinutes(total), nil
}

// UserLastSessionDate returns the logout date of the last recorded session.
// The last element in insertion order is used, not the maximum logout time.
func (s *StatusService) UserLastSessionDate(ctx context.Context, userID string) (string, bool, error) {
	sessions, err := s.analytics.UserSessions(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if len(sessions) == 0 {
		return "", false, nil
	}
	last := sessions[len(sessions)-1]
	return last.LogoutTime.Format(time.DateOnly), true, nil
}
