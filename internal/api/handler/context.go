package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the caller's user id injected by the Auth middleware.
// Its presence proves the middleware ran; an empty value means the route was
// wired without auth and must not proceed.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
