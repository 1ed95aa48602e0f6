package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "blog/internal/errors"
	appmw "blog/internal/middleware"
)

// Page is the envelope every view is rendered in.
type Page struct {
	// CSRF must be echoed back as the _csrf form field on the next POST.
	CSRF   string `json:"csrf,omitempty"`
	Viewer string `json:"viewer,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func render(c echo.Context, status int, data any) error {
	page := Page{Data: data}
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok {
		page.CSRF = token
	}
	if p := appmw.PrincipalFrom(c); !p.IsAnonymous() {
		page.Viewer = p.Email
	}
	return c.JSON(status, page)
}

func redirect(c echo.Context, path string) error {
	return c.Redirect(http.StatusFound, path)
}

// formRedirect sends recoverable failures back to the form and lets fatal ones through.
func formRedirect(c echo.Context, err error, back string) error {
	if apperrors.IsFatal(err) {
		return err
	}
	return redirect(c, back)
}

func redirectf(c echo.Context, format string, args ...any) error {
	return redirect(c, fmt.Sprintf(format, args...))
}

// idParam parses the :id path parameter. ok is false for anything that is
// not a positive integer; callers treat that like a missing record.
func idParam(c echo.Context) (id uint, ok bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
