package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/useractivity/analytics/internal/core/domain"
	"github.com/useractivity/analytics/internal/core/ports"
)

// Strictness controls validations that are off by default: the original
// system records reversed sessions and accepts negative day thresholds
// without complaint, so both checks are opt-in.
type Strictness struct {
	// SessionOrder rejects sessions whose logout precedes their login.
	SessionOrder bool
	// InactiveDays rejects negative day thresholds in inactivity scans.
	InactiveDays bool
}

// AnalyticsService is the session-analytics engine: registration, session
// recording, and the read queries derived from the registry. All aggregates
// are recomputed from stored sessions on every read; nothing is cached.
type AnalyticsService struct {
	repo   ports.AnalyticsRepository
	strict Strictness
	logger zerolog.Logger
}

func NewAnalyticsService(repo ports.AnalyticsRepository, strict Strictness, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, strict: strict, logger: logger}
}

// RegisterUser creates a new user with an empty session history. The boolean
// is always true on success; every failure path is an error.
func (s *AnalyticsService) RegisterUser(ctx context.Context, userID, name string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, fmt.Errorf("register user: blank user id: %w", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(name) == "" {
		return false, fmt.Errorf("register user %q: blank user name: %w", userID, domain.ErrInvalidArgument)
	}

	if err := s.repo.CreateUser(ctx, domain.User{ID: userID, Name: name}); err != nil {
		return false, fmt.Errorf("register user %q: %w", userID, err)
	}

	s.logger.Info().Str("user_id", userID).Msg("user registered")
	return true, nil
}

// RecordSession appends a session to an existing user's history in call
// order. Login/logout ordering is only checked in strict mode.
func (s *AnalyticsService) RecordSession(ctx context.Context, in ports.RecordSessionInput) error {
	if s.strict.SessionOrder && in.LogoutTime.Before(in.LoginTime) {
		return fmt.Errorf("record session for %q: logout %s precedes login %s: %w",
			in.UserID, in.LogoutTime.Format(time.DateTime), in.LoginTime.Format(time.DateTime), domain.ErrInvalidArgument)
	}

	session := domain.Session{
		UserID:     in.UserID,
		LoginTime:  in.LoginTime,
		LogoutTime: in.LogoutTime,
	}
	if err := s.repo.AppendSession(ctx, session); err != nil {
		return fmt.Errorf("record session for %q: %w", in.UserID, err)
	}

	s.logger.Info().
		Str("user_id", in.UserID).
		Int64("minutes", session.Minutes()).
		Msg("session recorded")
	return nil
}

// TotalActivityTime sums the user's session durations in whole minutes.
// Durations are truncated per session; reversed sessions contribute negative
// minutes when strict ordering is off.
func (s *AnalyticsService) TotalActivityTime(ctx context.Context, userID string) (int64, error) {
	sessions, err := s.repo.UserSessions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("total activity for %q: %w", userID, err)
	}
	if len(sessions) == 0 {
		return 0, fmt.Errorf("total activity for %q: %w", userID, domain.ErrNoSessions)
	}

	var total int64
	for _, session := range sessions {
		total += session.Minutes()
	}
	return total, nil
}

// FindInactiveUsers returns the ids of users whose most recently recorded
// session ended more than days days before now, in registration order.
// Users with no sessions are neither active nor inactive and are skipped.
func (s *AnalyticsService) FindInactiveUsers(ctx context.Context, days int) ([]string, error) {
	if s.strict.InactiveDays && days < 0 {
		return nil, fmt.Errorf("find inactive users: negative days %d: %w", days, domain.ErrInvalidArgument)
	}

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("find inactive users: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	inactive := make([]string, 0)
	for _, user := range users {
		sessions, err := s.repo.UserSessions(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("find inactive users: %w", err)
		}
		if len(sessions) == 0 {
			continue
		}
		// Last recorded session stands in for most recent; histories are
		// assumed to arrive in chronological order.
		last := sessions[len(sessions)-1]
		if last.LogoutTime.Before(cutoff) {
			inactive = append(inactive, user.ID)
		}
	}
	return inactive, nil
}

// MonthlyActivityMetric buckets the user's activity by login date for every
// session whose login falls inside month. A session is attributed entirely to
// its login date; spanning midnight is not accounted for.
func (s *AnalyticsService) MonthlyActivityMetric(ctx context.Context, userID string, month ports.YearMonth) (map[string]int64, error) {
	if !month.Valid() {
		return nil, fmt.Errorf("monthly activity for %q: month %s out of range: %w", userID, month, domain.ErrInvalidArgument)
	}

	sessions, err := s.repo.UserSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("monthly activity for %q: %w", userID, err)
	}

	metric := make(map[string]int64)
	for _, session := range sessions {
		if !month.Contains(session.LoginTime) {
			continue
		}
		metric[session.LoginTime.Format(time.DateOnly)] += session.Minutes()
	}
	return metric, nil
}

// UserSessions returns the user's full history in insertion order.
func (s *AnalyticsService) UserSessions(ctx context.Context, userID string) ([]domain.Session, error) {
	sessions, err := s.repo.UserSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("sessions for %q: %w", userID, err)
	}
	return sessions, nil
}
