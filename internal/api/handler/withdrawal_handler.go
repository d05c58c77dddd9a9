package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahho/rewards-platform/internal/core/ports"
)

// WithdrawalHandler handles balance-debiting withdrawal requests.
type WithdrawalHandler struct {
	withdrawals ports.WithdrawalService
}

func NewWithdrawalHandler(withdrawals ports.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

// Request handles POST /v1/withdrawals.
//
// @Summary      Request a withdrawal
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      withdrawRequest  true  "Amount and optional payout method"
// @Success      200   {object}  withdrawResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/withdrawals [post]
func (h *WithdrawalHandler) Request(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req withdrawRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	w, err := h.withdrawals.Request(c.Request().Context(), userID, req.Amount, req.Method)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, withdrawResponse{OK: true, Withdrawal: w})
}
