package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/useractivity/analytics/internal/core/domain"
	"github.com/useractivity/analytics/internal/core/ports"
)

// stubAnalytics fakes the engine behind the status service.
type stubAnalytics struct {
	ports.AnalyticsService

	total    int64
	totalErr error

	sessions    []domain.Session
	sessionsErr error
}

func (s *stubAnalytics) TotalActivityTime(_ context.Context, _ string) (int64, error) {
	return s.total, s.totalErr
}

func (s *stubAnalytics) UserSessions(_ context.Context, _ string) ([]domain.Session, error) {
	return s.sessions, s.sessionsErr
}

func TestUserStatus_Bands(t *testing.T) {
	tests := []struct {
		minutes int64
		want    domain.UserStatus
	}{
		{0, domain.StatusInactive},
		{59, domain.StatusInactive},
		{60, domain.StatusActive},
		{90, domain.StatusActive},
		{119, domain.StatusActive},
		{120, domain.StatusHighlyActive},
		{150, domain.StatusHighlyActive},
	}

	for _, tc := range tests {
		svc := NewStatusService(&stubAnalytics{total: tc.minutes}, zerolog.Nop())
		got, err := svc.UserStatus(context.Background(), "user1")
		if err != nil {
			t.Fatalf("minutes=%d: unexpected error: %v", tc.minutes, err)
		}
		if got != tc.want {
			t.Fatalf("minutes=%d: expected %q, got %q", tc.minutes, tc.want, got)
		}
	}
}

func TestUserStatus_PropagatesErrors(t *testing.T) {
	for _, sentinel := range []error{domain.ErrUserNotFound, domain.ErrNoSessions} {
		svc := NewStatusService(&stubAnalytics{totalErr: sentinel}, zerolog.Nop())
		_, err := svc.UserStatus(context.Background(), "user1")
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected %v propagated unchanged, got %v", sentinel, err)
		}
	}
}

func TestUserLastSessionDate(t *testing.T) {
	sessions := []domain.Session{
		{
			UserID:     "user1",
			LoginTime:  time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC),
			LogoutTime: time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			// Recorded last but chronologically earlier: insertion order wins.
			UserID:     "user1",
			LoginTime:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			LogoutTime: time.Date(2025, time.January, 1, 2, 0, 0, 0, time.UTC),
		},
	}
	svc := NewStatusService(&stubAnalytics{sessions: sessions}, zerolog.Nop())

	date, ok, err := svc.UserLastSessionDate(context.Background(), "user1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a date for a user with sessions")
	}
	if date != "2025-01-01" {
		t.Fatalf("expected 2025-01-01 (last recorded), got %s", date)
	}
}

func TestUserLastSessionDate_NoSessions(t *testing.T) {
	svc := NewStatusService(&stubAnalytics{}, zerolog.Nop())

	date, ok, err := svc.UserLastSessionDate(context.Background(), "user3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || date != "" {
		t.Fatalf("expected no date, got %q (ok=%v)", date, ok)
	}
}

func TestUserLastSessionDate_UnknownUser(t *testing.T) {
	svc := NewStatusService(&stubAnalytics{sessionsErr: domain.ErrUserNotFound}, zerolog.Nop())

	_, _, err := svc.UserLastSessionDate(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
