package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/useractivity/analytics/internal/core/ports"
)

// StatusHandler exposes the derived status signals.
type StatusHandler struct {
	service ports.StatusService
}

func NewStatusHandler(service ports.StatusService) *StatusHandler {
	return &StatusHandler{service: service}
}

type userStatusResponse struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type lastSessionDateResponse struct {
	UserID string `json:"userId"`
	// LastSessionDate is null when the user has no recorded sessions.
	LastSessionDate *string `json:"lastSessionDate"`
}

// UserStatus handles GET /userStatus.
//
// @Summary      Coarse activity status for a user
// @Tags         status
// @Produce      json
// @Param        userId  query     string  true  "User id"
// @Success      200     {object}  userStatusResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /userStatus [get]
func (h *StatusHandler) UserStatus(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userid is required")
	}

	status, err := h.service.UserStatus(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userStatusResponse{UserID: userID, Status: string(status)})
}

// LastSessionDate handles GET /lastSessionDate.
//
// @Summary      Date of the user's most recently recorded session
// @Tags         status
// @Produce      json
// @Param        userId  query     string  true  "User id"
// @Success      200     {object}  lastSessionDateResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /lastSessionDate [get]
func (h *StatusHandler) LastSessionDate(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userid is required")
	}

	date, ok, err := h.service.UserLastSessionDate(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := lastSessionDateResponse{UserID: userID}
	if ok {
		resp.LastSessionDate = &date
	}
	return c.JSON(http.StatusOK, resp)
}
