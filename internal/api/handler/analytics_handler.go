package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/useractivity/analytics/internal/api/metrics"
	"github.com/useractivity/analytics/internal/core/domain"
	"github.com/useractivity/analytics/internal/core/ports"
)

// Wire formats accepted at the boundary. Timestamps are naive local
// date-times; the engine itself only ever sees parsed values.
const (
	timestampLayout = "2006-01-02T15:04:05"
	monthLayout     = "2006-01"
)

// AnalyticsHandler translates wire-level analytics operations into engine calls.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// --- Request / Response types ---

type registerRequest struct {
	UserID   string `query:"userId"   validate:"required"`
	UserName string `query:"userName" validate:"required"`
}

type registerResponse struct {
	UserID     string `json:"userId"`
	Registered bool   `json:"registered"`
}

type recordSessionRequest struct {
	UserID     string `query:"userId"     validate:"required"`
	LoginTime  string `query:"loginTime"  validate:"required"`
	LogoutTime string `query:"logoutTime" validate:"required"`
}

type recordSessionResponse struct {
	UserID   string `json:"userId"`
	Recorded bool   `json:"recorded"`
}

type totalActivityResponse struct {
	UserID       string `json:"userId"`
	TotalMinutes int64  `json:"totalMinutes"`
}

type sessionResponse struct {
	UserID     string `json:"userId"`
	LoginTime  string `json:"loginTime"`
	LogoutTime string `json:"logoutTime"`
}

// Register handles POST /register.
//
// @Summary      Register a new user
// @Tags         analytics
// @Produce      json
// @Param        userId    query     string  true  "Caller-assigned unique user id"
// @Param        userName  query     string  true  "Display name"
// @Success      200       {object}  registerResponse
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /register [post]
func (h *AnalyticsHandler) Register(c echo.Context) error {
	req := registerRequest{
		UserID:   c.QueryParam("userId"),
		UserName: c.QueryParam("userName"),
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	registered, err := h.service.RegisterUser(c.Request().Context(), req.UserID, req.UserName)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusOK, registerResponse{UserID: req.UserID, Registered: registered})
}

// RecordSession handles POST /recordSession.
//
// @Summary      Record a login/logout session
// @Tags         analytics
// @Produce      json
// @Param        userId      query     string  true  "User id"
// @Param        loginTime   query     string  true  "Login time (2006-01-02T15:04:05)"
// @Param        logoutTime  query     string  true  "Logout time (2006-01-02T15:04:05)"
// @Success      200         {object}  recordSessionResponse
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /recordSession [post]
func (h *AnalyticsHandler) RecordSession(c echo.Context) error {
	req := recordSessionRequest{
		UserID:     c.QueryParam("userId"),
		LoginTime:  c.QueryParam("loginTime"),
		LogoutTime: c.QueryParam("logoutTime"),
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	login, err := time.Parse(timestampLayout, req.LoginTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "loginTime must match "+timestampLayout)
	}
	logout, err := time.Parse(timestampLayout, req.LogoutTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "logoutTime must match "+timestampLayout)
	}

	err = h.service.RecordSession(c.Request().Context(), ports.RecordSessionInput{
		UserID:     req.UserID,
		LoginTime:  login,
		LogoutTime: logout,
	})
	if err != nil {
		return err
	}

	metrics.SessionsRecordedTotal.Inc()
	return c.JSON(http.StatusOK, recordSessionResponse{UserID: req.UserID, Recorded: true})
}

// TotalActivity handles GET /totalActivity.
//
// @Summary      Total activity time in minutes
// @Tags         analytics
// @Produce      json
// @Param        userId  query     string  true  "User id"
// @Success      200     {object}  totalActivityResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /totalActivity [get]
func (h *AnalyticsHandler) TotalActivity(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userid is required")
	}

	minutes, err := h.service.TotalActivityTime(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, totalActivityResponse{UserID: userID, TotalMinutes: minutes})
}

// InactiveUsers handles GET /inactiveUsers.
//
// @Summary      List users inactive for more than N days
// @Tags         analytics
// @Produce      json
// @Param        days  query     int  true  "Inactivity threshold in days"
// @Success      200   {array}   string
// @Failure      400   {object}  map[string]string
// @Router       /inactiveUsers [get]
func (h *AnalyticsHandler) InactiveUsers(c echo.Context) error {
	daysParam := c.QueryParam("days")
	if daysParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "days is required")
	}
	days, err := strconv.Atoi(daysParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "days must be an integer")
	}

	inactive, err := h.service.FindInactiveUsers(c.Request().Context(), days)
	if err != nil {
		return err
	}

	metrics.InactiveScansTotal.Inc()
	return c.JSON(http.StatusOK, inactive)
}

// MonthlyActivity handles GET /monthlyActivity.
//
// @Summary      Per-day activity minutes within a month
// @Tags         analytics
// @Produce      json
// @Param        userId  query     string  true  "User id"
// @Param        month   query     string  true  "Month selector (2006-01)"
// @Success      200     {object}  map[string]int64
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /monthlyActivity [get]
func (h *AnalyticsHandler) MonthlyActivity(c echo.Context) error {
	userID := c.QueryParam("userId")
	monthParam := c.QueryParam("month")
	if userID == "" || monthParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userid and month are required")
	}

	parsed, err := time.Parse(monthLayout, monthParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "month must match "+monthLayout)
	}

	metric, err := h.service.MonthlyActivityMetric(c.Request().Context(), userID, ports.YearMonth{
		Year:  parsed.Year(),
		Month: parsed.Month(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, metric)
}

// UserSessions handles GET /userSessions.
//
// @Summary      Full session history for a user
// @Tags         analytics
// @Produce      json
// @Param        userId  query     string  true  "User id"
// @Success      200     {array}   sessionResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /userSessions [get]
func (h *AnalyticsHandler) UserSessions(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userid is required")
	}

	sessions, err := h.service.UserSessions(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, toSessionResponse(s))
	}
	return c.JSON(http.StatusOK, resp)
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		UserID:     s.UserID,
		LoginTime:  s.LoginTime.Format(timestampLayout),
		LogoutTime: s.LogoutTime.Format(timestampLayout),
	}
}
