package errors

import (
	"errors"
	"net/http"
)

// Not-found errors for the top-level resource of a request. Handlers turn
// them into redirects to a safe page.
var (
	// ErrArticleNotFound is returned when the requested article does not exist.
	ErrArticleNotFound = errors.New("article not found")
	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryNotFound is returned when a category listing names an unknown category.
	ErrCategoryNotFound = errors.New("category not found")
)

// ErrForbidden is returned when an ownership check denies the principal.
var ErrForbidden = errors.New("access denied")

// Recoverable validation failures; the form is shown again, nothing is written.
var (
	ErrPasswordMismatch    = errors.New("password and confirmation do not match")
	ErrConfirmCodeMismatch = errors.New("confirmation code does not match")
	ErrEmptyEmail          = errors.New("email is required")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrValidation          = errors.New("validation failed")
)

// Fatal conditions. They indicate a logic error or a broken session and
// surface as 500s.
var (
	// ErrUnknownPrincipal is returned when an authenticated email has no user record.
	ErrUnknownPrincipal = errors.New("unknown principal")
	// ErrInvalidArgument is returned when a referenced id cannot be resolved
	// after the request's existence checks passed.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors (possibly wrapped) to HTTP errors.
// Unknown errors become an opaque 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrArticleNotFound):
		return NewHTTPError(http.StatusNotFound, ErrArticleNotFound.Error(), "ARTICLE_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCategoryNotFound.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, ErrPasswordMismatch.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrConfirmCodeMismatch):
		return NewHTTPError(http.StatusBadRequest, ErrConfirmCodeMismatch.Error(), "CONFIRM_CODE_MISMATCH")
	case errors.Is(err, ErrEmptyEmail):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyEmail.Error(), "EMPTY_EMAIL")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, ErrUserAlreadyExists.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrUnknownPrincipal):
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "UNKNOWN_PRINCIPAL")
	case errors.Is(err, ErrInvalidArgument):
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INVALID_ARGUMENT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// IsFatal reports whether err must surface as a server error rather than a redirect.
func IsFatal(err error) bool {
	return MapErrorToHTTP(err).StatusCode >= http.StatusInternalServerError
}
