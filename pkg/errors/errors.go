package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenNotYetValid     = fmt.Errorf("token is not active yet")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("invalid authorization header format")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("access denied")

	// Context
	ErrActorNotFoundInContext = fmt.Errorf("actor not found in request context")

	// Common
	ErrNotFound        = fmt.Errorf("record not found")
	ErrBadRequest      = fmt.Errorf("bad request")
	ErrConflict        = fmt.Errorf("record is still referenced")
	ErrOperationFailed = fmt.Errorf("operation failed, please retry")
)

var statusByError = map[error]int{
	ErrInvalidSigningMethod:   http.StatusUnauthorized,
	ErrInvalidToken:           http.StatusUnauthorized,
	ErrTokenExpired:           http.StatusUnauthorized,
	ErrTokenNotYetValid:       http.StatusUnauthorized,
	ErrTokenIsNotAccess:       http.StatusUnauthorized,
	ErrTokenIsNotRefresh:      http.StatusUnauthorized,
	ErrEmptyAuthHeader:        http.StatusUnauthorized,
	ErrInvalidAuthHeader:      http.StatusUnauthorized,
	ErrInvalidCredentials:     http.StatusUnauthorized,
	ErrUnauthorized:           http.StatusUnauthorized,
	ErrActorNotFoundInContext: http.StatusUnauthorized,
	ErrForbidden:              http.StatusForbidden,
	ErrNotFound:               http.StatusNotFound,
	ErrBadRequest:             http.StatusBadRequest,
	ErrConflict:               http.StatusConflict,
	ErrOperationFailed:        http.StatusInternalServerError,
}

// StatusCode returns the HTTP status registered for a sentinel found in err's chain.
func StatusCode(err error) (int, bool) {
	for sentinel, code := range statusByError {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return 0, false
}

// HttpError is an error already shaped for the HTTP response.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

// ValidationError collects field level problems, keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
