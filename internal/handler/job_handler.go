package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/jobquery"
	"greenjobs/internal/service"
)

// JobHandler handles job and company endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// ListJobs godoc
// @Summary List jobs
// @Description Newest first. Title and location match case-insensitive substrings; sector and workType match exactly.
// @Tags jobs
// @Produce json
// @Param title query string false "Title substring"
// @Param location query string false "Location substring"
// @Param sector query string false "Sector"
// @Param workType query string false "Work type"
// @Success 200 {array} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c echo.Context) error {
	f, err := jobquery.FromQuery(c.QueryParams())
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	jobs, err := h.jobService.List(c.Request().Context(), f)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// FeaturedJobs godoc
// @Summary Featured jobs
// @Tags jobs
// @Produce json
// @Success 200 {array} model.Job
// @Router /jobs/featured [get]
func (h *JobHandler) FeaturedJobs(c echo.Context) error {
	jobs, err := h.jobService.Featured(c.Request().Context())
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// GetJob godoc
// @Summary Job detail
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c echo.Context) error {
	job, err := h.jobService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, job)
}

// TrackRedirect godoc
// @Summary Count a click through to a third-party listing
// @Tags jobs
// @Param id path string true "Job ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id}/track-redirect [post]
func (h *JobHandler) TrackRedirect(c echo.Context) error {
	if _, err := h.jobService.TrackRedirect(c.Request().Context(), c.Param("id")); err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetCompany godoc
// @Summary Company detail
// @Tags jobs
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} model.Company
// @Failure 404 {object} errors.ErrorResponse
// @Router /companies/{id} [get]
func (h *JobHandler) GetCompany(c echo.Context) error {
	company, err := h.jobService.Company(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, company)
}

// EmployerJobs godoc
// @Summary Jobs of the caller's company
// @Tags employer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Job
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /employer/jobs [get]
func (h *JobHandler) EmployerJobs(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	jobs, err := h.jobService.EmployerJobs(c.Request().Context(), user)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, jobs)
}
