package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"greenjobs/internal/auth"
	"greenjobs/internal/config"
	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/handler"
	"greenjobs/internal/model"
	"greenjobs/internal/repository"
	"greenjobs/internal/service"
)

// Handlers bundles the route handlers Register wires.
type Handlers struct {
	Auth  *handler.AuthHandler
	Jobs  *handler.JobHandler
	Admin *handler.AdminHandler
}

// Register wires routes and middleware. authService resolves bearer tokens
// for the secured group.
func Register(e *echo.Echo, authService service.AuthService, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/google", h.Auth.Google)
	api.GET("/jobs", h.Jobs.ListJobs)
	api.GET("/jobs/featured", h.Jobs.FeaturedJobs)
	api.GET("/jobs/:id", h.Jobs.GetJob)
	api.POST("/jobs/:id/track-redirect", h.Jobs.TrackRedirect)
	api.GET("/companies/:id", h.Jobs.GetCompany)

	// Secured routes (require a bearer token of an existing user)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.CurrentUserKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
		},
	}))

	secured.GET("/auth/me", h.Auth.Me)
	secured.PUT("/auth/profile", h.Auth.UpdateProfile)

	employer := secured.Group("/employer", requireRole(model.RoleEmployer, apperrors.ErrEmployerOnly))
	employer.GET("/jobs", h.Jobs.EmployerJobs)

	admin := secured.Group("/admin", requireRole(model.RoleAdmin, apperrors.ErrAdminOnly))
	admin.GET("/stats", h.Admin.Stats)
	admin.POST("/companies/:id/verify", h.Admin.VerifyCompany)
}

// NewMockAPI builds the seeded in-memory API: repositories, services and
// handlers behind a fresh echo instance.
func NewMockAPI(ctx context.Context, cfg *config.Config) (*echo.Echo, error) {
	mem := repository.NewMemory()
	companyRepo := repository.NewCompanyRepository(mem)
	jobRepo := repository.NewJobRepository(mem)
	userRepo := repository.NewUserRepository(mem)
	redirectRepo := repository.NewRedirectRepository(mem)

	admin := service.AdminAccount{Name: cfg.AdminName, Email: cfg.AdminEmail, Password: cfg.AdminPassword}
	if err := service.NewSeedService(companyRepo, jobRepo, userRepo, redirectRepo, admin).Seed(ctx); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenExpiry)
	authService := service.NewAuthService(userRepo, companyRepo, jwtService, admin)
	jobService := service.NewJobService(jobRepo, companyRepo, redirectRepo)
	adminService := service.NewAdminService(jobRepo, companyRepo, userRepo, redirectRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	Register(e, authService, Handlers{
		Auth:  handler.NewAuthHandler(authService),
		Jobs:  handler.NewJobHandler(jobService),
		Admin: handler.NewAdminHandler(adminService),
	})
	return e, nil
}

func requireRole(role model.Role, denied error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := handler.CurrentUser(c)
			if err != nil {
				return apperrors.MapErrorToHTTP(err)
			}
			if user.Role() != role {
				return apperrors.MapErrorToHTTP(denied)
			}
			return next(c)
		}
	}
}

// ErrorHandler writes every failure as {"detail": ...}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	detail := "Internal server error"

	var appErr *apperrors.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status, detail = appErr.StatusCode, appErr.Detail
	case errors.As(err, &echoErr):
		status = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			detail = msg
		} else {
			detail = http.StatusText(status)
		}
	default:
		c.Logger().Error(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, apperrors.ErrorResponse{Detail: detail})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
