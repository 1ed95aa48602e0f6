package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	appmw "blog/internal/middleware"
	"blog/internal/model"
	"blog/internal/policy"
)

var (
	alice = policy.Principal{UserID: 1, Email: "a@x.com", Roles: []model.RoleName{model.RoleUser}}
	root  = policy.Principal{UserID: 9, Email: "root@x.com", Roles: []model.RoleName{model.RoleAdmin}}
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	return e
}

// serve runs one request through e with p installed as the principal.
func serve(e *echo.Echo, p policy.Principal, req *http.Request) *httptest.ResponseRecorder {
	e.Pre(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			appmw.WithPrincipal(c, p)
			return next(c)
		}
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func multipartRequest(t *testing.T, target string, values url.Values, picture []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, vs := range values {
		for _, v := range vs {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	if picture != nil {
		fw, err := w.CreateFormFile(pictureField, "pic.png")
		require.NoError(t, err)
		_, err = fw.Write(picture)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}
