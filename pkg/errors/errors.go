package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoToken             = errors.New("no token stored")
	ErrMalformedToken      = errors.New("malformed session token")
	ErrStorageUnavailable  = errors.New("token storage unavailable")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrDuplicatePattern    = errors.New("duplicate route pattern")
	ErrAmbiguousWildcard   = errors.New("ambiguous wildcard patterns with equal prefix length")
	ErrUnknownRole         = errors.New("unknown role")
	ErrMissingRedirect     = errors.New("role has no default redirect")
	ErrRejectedWithMessage = errors.New("cannot send a message when rejecting an application")
)

// APIError is the typed error every failed backend call is normalized into.
// Status 0 means the request never reached the server.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// NewConnectionError marks a transport-level failure: DNS, refused
// connection, anything that happened before a response existed.
func NewConnectionError() *APIError {
	return &APIError{
		Status:  0,
		Message: "Erro de conexão. Tente novamente.",
		Code:    "NetworkError",
	}
}

// DefaultMessage returns the fallback message for a status when the error
// body is absent or unparsable.
func DefaultMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request data"
	case http.StatusUnauthorized:
		return "Authentication required"
	case http.StatusForbidden:
		return "Access forbidden"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusConflict:
		return "Conflict: resource already exists"
	case http.StatusUnprocessableEntity:
		return "Unprocessable entity"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return "An error occurred"
	}
}

// AsAPIError unwraps err into an *APIError, or nil if it is not one.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
