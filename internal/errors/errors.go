package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrJobNotFound is returned when a job id does not exist.
	ErrJobNotFound = errors.New("Job not found")
	// ErrCompanyNotFound is returned when a company id does not exist.
	ErrCompanyNotFound = errors.New("Company not found")
	// ErrUserNotFound is returned when a user referenced by a token no longer exists.
	ErrUserNotFound = errors.New("User not found")
	// ErrNoUserForRole is returned by the social login when no account has the requested role.
	ErrNoUserForRole = errors.New("No user found for the requested role")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUnauthorized is returned when a bearer token is missing or invalid.
	ErrUnauthorized = errors.New("Could not validate credentials")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("Email already registered")
	// ErrAdminRegistration is returned when a registration asks for the admin role.
	ErrAdminRegistration = errors.New("Admin accounts must be provisioned via environment variables")
	// ErrAdminSocialLogin is returned when the social login asks for the admin role.
	ErrAdminSocialLogin = errors.New("Admin login must happen via configured credentials")
	// ErrEmployerCompany is returned when an employer registers without a company.
	ErrEmployerCompany = errors.New("Employer accounts must include a company profile or a company identifier")
	// ErrEmployeesOnly is returned when a non-employee updates a profile.
	ErrEmployeesOnly = errors.New("Only employees can update profiles")
	// ErrAdminOnly guards admin routes.
	ErrAdminOnly = errors.New("Admin privileges required")
	// ErrEmployerOnly guards employer routes.
	ErrEmployerOnly = errors.New("Employer privileges required")
	// ErrInvalidFilter is returned when a job filter carries an unknown enum value.
	ErrInvalidFilter = errors.New("Invalid job filter")
)

// ErrorResponse is the wire shape of every failed API call.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	return e.Detail
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, detail string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Detail:     detail,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Detail: e.Detail}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	switch {
	case errors.Is(err, ErrJobNotFound),
		errors.Is(err, ErrCompanyNotFound),
		errors.Is(err, ErrNoUserForRole):
		return NewHTTPError(http.StatusNotFound, rootMessage(err))
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, rootMessage(err))
	case errors.Is(err, ErrEmployeesOnly),
		errors.Is(err, ErrAdminOnly),
		errors.Is(err, ErrEmployerOnly):
		return NewHTTPError(http.StatusForbidden, rootMessage(err))
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrAdminRegistration),
		errors.Is(err, ErrAdminSocialLogin),
		errors.Is(err, ErrEmployerCompany),
		errors.Is(err, ErrInvalidFilter):
		return NewHTTPError(http.StatusBadRequest, rootMessage(err))
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// rootMessage returns the message of the innermost wrapped error so that
// context added with fmt.Errorf does not leak into the detail field.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
