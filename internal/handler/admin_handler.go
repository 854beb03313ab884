package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/service"
)

// AdminHandler handles admin-only endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats godoc
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AdminStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// VerifyCompany godoc
// @Summary Mark a company verified
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {object} model.Company
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/companies/{id}/verify [post]
func (h *AdminHandler) VerifyCompany(c echo.Context) error {
	company, err := h.adminService.VerifyCompany(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, company)
}
