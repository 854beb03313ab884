package errors

import (
	"errors"
	"fmt"
)

// GenericMessage is used when neither the payload nor the transport
// provides anything better.
const GenericMessage = "Request failed"

// ErrResponseTooLarge is returned when a successful response body exceeds
// the client's size limit.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// RequestError is what the API client returns for every failed call.
// StatusCode is 0 when the request never produced a response.
type RequestError struct {
	StatusCode int
	Status     string
	Message    string
	Cause      error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Transport reports whether the failure happened before any HTTP status was received.
func (e *RequestError) Transport() bool {
	return e.StatusCode == 0
}

// NewTransportError wraps a network level failure.
func NewTransportError(cause error) *RequestError {
	return &RequestError{
		Message: fmt.Sprintf("%s: network error", GenericMessage),
		Cause:   cause,
	}
}

// IsStatus reports whether err is a RequestError carrying the given status.
func IsStatus(err error, status int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == status
}
