package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	appmw "blog/internal/middleware"
	"blog/internal/service"
)

// SessionCookies writes the token pair as HttpOnly cookies.
type SessionCookies struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (s SessionCookies) set(c echo.Context, session *service.Session) {
	c.SetCookie(s.cookie(appmw.AccessCookie, session.AccessToken, s.AccessTTL))
	c.SetCookie(s.cookie(appmw.RefreshCookie, session.RefreshToken, s.RefreshTTL))
}

func (s SessionCookies) setAccess(c echo.Context, token string) {
	c.SetCookie(s.cookie(appmw.AccessCookie, token, s.AccessTTL))
}

func (s SessionCookies) clear(c echo.Context) {
	for _, name := range []string{appmw.AccessCookie, appmw.RefreshCookie} {
		cookie := s.cookie(name, "", 0)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		c.SetCookie(cookie)
	}
}

func (s SessionCookies) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func refreshTokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(appmw.RefreshCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return c.FormValue("refresh_token")
}
