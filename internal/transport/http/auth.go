package http

import (
	"log/slog"
	"net/http"

	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/lib/logger/sl"
	"heritage_cms/internal/transport/http/dto"
	"heritage_cms/internal/transport/http/dto/request"
	"heritage_cms/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Login godoc
// @Summary Admin login
// @Description Authenticates the configured admin account and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=dto.LoginResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid login request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	pair, err := r.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		log.Warn("login rejected", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	// A successful login means the submitted email is the admin's.
	resp := dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         models.AdminUser{Email: req.Email, Role: models.RoleAdmin},
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resp))
}

// Refresh godoc
// @Summary Rotate the token pair
// @Description Exchanges a valid refresh token for a new access/refresh pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response{data=models.TokenPair}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.RefreshRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	pair, err := r.AuthService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Warn("refresh rejected", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(pair))
}

// Logout godoc
// @Summary Revoke a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest true "Refresh token"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/auth/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.RefreshRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.AuthService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return r.writeError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
