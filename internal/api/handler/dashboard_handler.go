package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahho/rewards-platform/internal/core/ports"
)

// DashboardHandler serves the read-only account summary.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get handles GET /v1/dashboard.
//
// @Summary      Account dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	sum, err := h.dashboard.Summary(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		User:           toUserResponse(sum.User),
		TasksCompleted: sum.User.TasksCompleted,
		Stats:          dashboardStats{Referrals: sum.Referrals},
	})
}
