package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahho/rewards-platform/internal/core/ports"
)

// AdminHandler serves the back-office overview. Routes using it must sit
// behind Auth plus RBAC(admin); the handler itself assumes both ran.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Overview handles GET /v1/admin/users.
//
// @Summary      List all users and withdrawal requests
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminOverviewResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	overview, err := h.admin.Overview(c.Request().Context())
	if err != nil {
		return err
	}

	users := make([]userResponse, 0, len(overview.Users))
	for _, u := range overview.Users {
		users = append(users, toUserResponse(u))
	}

	return c.JSON(http.StatusOK, adminOverviewResponse{
		Users:       users,
		Withdrawals: overview.Withdrawals,
	})
}
