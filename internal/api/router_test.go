package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/useractivity/analytics/internal/core/service"
	"github.com/useractivity/analytics/internal/infrastructure/db/memory"
)

func newTestRouter(strict service.Strictness) *echo.Echo {
	return NewRouter(memory.NewAnalyticsRepository(), strict, zerolog.Nop())
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

// Full walkthrough: register a user, record a two-hour session, and read every
// derived view of it.
func TestRouter_ActivityWalkthrough(t *testing.T) {
	e := newTestRouter(service.Strictness{})

	rec := do(e, http.MethodPost, "/register?userId=user1&userName=Alice")
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var reg map[string]any
	decode(t, rec, &reg)
	if reg["registered"] != true {
		t.Fatalf("register: unexpected payload %v", reg)
	}

	rec = do(e, http.MethodPost, "/recordSession?userId=user1&loginTime=2025-01-01T00:00:00&logoutTime=2025-01-01T02:00:00")
	if rec.Code != http.StatusOK {
		t.Fatalf("recordSession: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/totalActivity?userId=user1")
	if rec.Code != http.StatusOK {
		t.Fatalf("totalActivity: expected 200, got %d", rec.Code)
	}
	var total map[string]any
	decode(t, rec, &total)
	if total["totalMinutes"] != float64(120) {
		t.Fatalf("totalActivity: expected 120, got %v", total["totalMinutes"])
	}

	rec = do(e, http.MethodGet, "/userStatus?userId=user1")
	if rec.Code != http.StatusOK {
		t.Fatalf("userStatus: expected 200, got %d", rec.Code)
	}
	var status map[string]string
	decode(t, rec, &status)
	if status["status"] != "Highly active" {
		t.Fatalf("userStatus: expected Highly active, got %q", status["status"])
	}

	rec = do(e, http.MethodGet, "/monthlyActivity?userId=user1&month=2025-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("monthlyActivity: expected 200, got %d", rec.Code)
	}
	var metric map[string]int64
	decode(t, rec, &metric)
	if len(metric) != 1 || metric["2025-01-01"] != 120 {
		t.Fatalf("monthlyActivity: expected {2025-01-01: 120}, got %v", metric)
	}

	rec = do(e, http.MethodGet, "/lastSessionDate?userId=user1")
	if rec.Code != http.StatusOK {
		t.Fatalf("lastSessionDate: expected 200, got %d", rec.Code)
	}
	var last map[string]any
	decode(t, rec, &last)
	if last["lastSessionDate"] != "2025-01-01" {
		t.Fatalf("lastSessionDate: expected 2025-01-01, got %v", last["lastSessionDate"])
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	e := newTestRouter(service.Strictness{})

	if rec := do(e, http.MethodPost, "/register?userId=user1&userName=Alice"); rec.Code != http.StatusOK {
		t.Fatalf("seed register failed: %d", rec.Code)
	}

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{"missing register params", http.MethodPost, "/register?userId=user1", http.StatusBadRequest},
		{"blank user id", http.MethodPost, "/register?userId=%20&userName=Bob", http.StatusBadRequest},
		{"duplicate registration", http.MethodPost, "/register?userId=user1&userName=Alex", http.StatusConflict},
		{"session for unknown user", http.MethodPost, "/recordSession?userId=user2&loginTime=2025-01-01T00:00:00&logoutTime=2025-01-01T02:00:00", http.StatusNotFound},
		{"malformed timestamp", http.MethodPost, "/recordSession?userId=user1&loginTime=bad&logoutTime=2025-01-01T02:00:00", http.StatusBadRequest},
		{"total for unknown user", http.MethodGet, "/totalActivity?userId=user2", http.StatusNotFound},
		{"total with no sessions", http.MethodGet, "/totalActivity?userId=user1", http.StatusNotFound},
		{"malformed days", http.MethodGet, "/inactiveUsers?days=abc", http.StatusBadRequest},
		{"missing days", http.MethodGet, "/inactiveUsers", http.StatusBadRequest},
		{"malformed month", http.MethodGet, "/monthlyActivity?userId=user1&month=13-2025", http.StatusBadRequest},
		{"sessions for unknown user", http.MethodGet, "/userSessions?userId=user2", http.StatusNotFound},
		{"status for unknown user", http.MethodGet, "/userStatus?userId=user2", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, tc.method, tc.target)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}
			var resp map[string]string
			decode(t, rec, &resp)
			if resp["error"] == "" {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}
		})
	}
}

func TestRouter_StrictMode(t *testing.T) {
	e := newTestRouter(service.Strictness{SessionOrder: true, InactiveDays: true})

	if rec := do(e, http.MethodPost, "/register?userId=user1&userName=Alice"); rec.Code != http.StatusOK {
		t.Fatalf("register: got %d", rec.Code)
	}

	rec := do(e, http.MethodPost, "/recordSession?userId=user1&loginTime=2025-01-01T02:00:00&logoutTime=2025-01-01T00:00:00")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reversed session in strict mode: expected 400, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/inactiveUsers?days=-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative days in strict mode: expected 400, got %d", rec.Code)
	}
}

func TestRouter_ZeroSessionUserScenario(t *testing.T) {
	e := newTestRouter(service.Strictness{})

	if rec := do(e, http.MethodPost, "/register?userId=user3&userName=Alex"); rec.Code != http.StatusOK {
		t.Fatalf("register: got %d", rec.Code)
	}

	if rec := do(e, http.MethodGet, "/totalActivity?userId=user3"); rec.Code != http.StatusNotFound {
		t.Fatalf("totalActivity: expected 404, got %d", rec.Code)
	}

	rec := do(e, http.MethodGet, "/inactiveUsers?days=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("inactiveUsers: expected 200, got %d", rec.Code)
	}
	var ids []string
	decode(t, rec, &ids)
	if len(ids) != 0 {
		t.Fatalf("inactiveUsers must exclude zero-session users, got %v", ids)
	}

	rec = do(e, http.MethodGet, "/userSessions?userId=user3")
	if rec.Code != http.StatusOK {
		t.Fatalf("userSessions: expected 200, got %d", rec.Code)
	}
	var sessions []any
	decode(t, rec, &sessions)
	if len(sessions) != 0 {
		t.Fatalf("expected empty history, got %v", sessions)
	}
}

func TestRouter_HealthProbes(t *testing.T) {
	e := newTestRouter(service.Strictness{})

	if rec := do(e, http.MethodGet, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}

	if rec := do(e, http.MethodPost, "/register?userId=user1&userName=Alice"); rec.Code != http.StatusOK {
		t.Fatalf("register: got %d", rec.Code)
	}

	rec := do(e, http.MethodGet, "/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
	var resp struct {
		Status   string `json:"status"`
		Registry struct {
			Users    int `json:"users"`
			Sessions int `json:"sessions"`
		} `json:"registry"`
	}
	decode(t, rec, &resp)
	if resp.Status != "ok" || resp.Registry.Users != 1 {
		t.Fatalf("unexpected readiness payload: %+v", resp)
	}
}
