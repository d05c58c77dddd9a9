package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahho/rewards-platform/internal/core/ports"
)

// LedgerHandler serves a user's own balance history.
type LedgerHandler struct {
	ledger ports.LedgerService
}

func NewLedgerHandler(ledger ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// Recent handles GET /v1/ledger — the caller's newest audit entries.
//
// @Summary      Recent balance history
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ledgerResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/ledger [get]
func (h *LedgerHandler) Recent(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	entries, err := h.ledger.Recent(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]ledgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ledgerEntryResponse{
			ID:         e.ID,
			Type:       string(e.Type),
			Amount:     e.Amount,
			Reference:  e.Reference,
			RecordedAt: e.RecordedAt,
		})
	}
	return c.JSON(http.StatusOK, ledgerResponse{Entries: out})
}
