package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"job not found", ErrJobNotFound, http.StatusNotFound, "Job not found"},
		{"wrapped company not found", fmt.Errorf("get company comp9: %w", ErrCompanyNotFound), http.StatusNotFound, "Company not found"},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"missing token", ErrUnauthorized, http.StatusUnauthorized, "Could not validate credentials"},
		{"admin only", ErrAdminOnly, http.StatusForbidden, "Admin privileges required"},
		{"duplicate email", ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
		{"explicit http error", NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantDetail, got.Detail)
			assert.Equal(t, ErrorResponse{Detail: tt.wantDetail}, got.ToErrorResponse())
		})
	}
}

func TestRequestError_Unwrap(t *testing.T) {
	err := NewTransportError(context.Canceled)
	assert.True(t, err.Transport())
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, err.Error(), GenericMessage)

	var reqErr *RequestError
	wrapped := fmt.Errorf("login: %w", &RequestError{StatusCode: 401, Message: "Invalid credentials"})
	assert.True(t, errors.As(wrapped, &reqErr))
	assert.False(t, reqErr.Transport())
	assert.Equal(t, "Invalid credentials", reqErr.Error())
}
