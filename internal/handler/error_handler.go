package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "blog/internal/errors"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to the JSON envelope. Recoverable errors never get here: handlers
// turn them into redirects. What arrives is either an Echo error (binding,
// unknown route) or a fatal condition, which is logged with its cause and
// answered with an opaque 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, apperrors.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, apperrors.ErrorResponse{
			Error: fmt.Sprintf("%v", he.Message),
			Code:  http.StatusText(he.Code),
		}
	}

	mapped := apperrors.MapErrorToHTTP(err)
	if mapped.StatusCode >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Str("code", mapped.Code).
			Msg("request failed")
	}
	return mapped.StatusCode, mapped.ToErrorResponse()
}
