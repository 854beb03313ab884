package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
	"greenjobs/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name      string               `json:"name" validate:"required"`
	Email     string               `json:"email" validate:"required,email"`
	Password  string               `json:"password" validate:"required"`
	Role      model.Role           `json:"role" validate:"required,oneof=employee employer admin"`
	CompanyID *string              `json:"company_id"`
	Company   *model.CompanyCreate `json:"company"`
}

// toRegisterData converts the wire company_id back to the internal field.
func (r RegisterRequest) toRegisterData() model.RegisterData {
	d := model.RegisterData{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		Company:  r.Company,
	}
	if r.CompanyID != nil {
		d.CompanyID = *r.CompanyID
	}
	return d
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return unprocessable(err)
	}
	if req.Company != nil {
		if err := c.Validate(req.Company); err != nil {
			return unprocessable(err)
		}
	}

	resp, err := h.authService.Register(c.Request().Context(), req.toRegisterData())
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginData true "Login credentials"
// @Success 200 {object} model.AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.LoginData
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return unprocessable(err)
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Google godoc
// @Summary Social login
// @Description Signs in as the first account with the requested role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.SocialLoginRequest true "Requested role"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) Google(c echo.Context) error {
	var req model.SocialLoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if req.Role != "" && !req.Role.Valid() {
		return apperrors.NewHTTPError(http.StatusUnprocessableEntity, "unknown role")
	}

	resp, err := h.authService.SocialLogin(c.Request().Context(), req.Role)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the employee profile
// @Description Fields left out of the body are not changed.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ProfileUpdate true "Profile fields"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	if user.Role() != model.RoleEmployee {
		return apperrors.MapErrorToHTTP(apperrors.ErrEmployeesOnly)
	}

	var req model.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	updated, err := h.authService.UpdateProfile(c.Request().Context(), user.ID, req)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, updated)
}
