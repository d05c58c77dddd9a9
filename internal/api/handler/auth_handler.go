package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahho/rewards-platform/internal/core/ports"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Signup registers a new account, optionally crediting a referrer.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details; ref is an optional referral code"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.identity.Signup(c.Request().Context(), ports.SignupInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		ReferralCode: req.Ref,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: toUserResponse(res.User)})
}

// Login authenticates by email and password and returns a fresh token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.identity.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: toUserResponse(res.User)})
}
