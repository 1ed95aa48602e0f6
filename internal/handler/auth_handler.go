package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "blog/internal/errors"
	appmw "blog/internal/middleware"
	"blog/internal/service"
)

// AuthHandler handles login, logout and token refresh.
type AuthHandler struct {
	authService service.AuthService
	cookies     SessionCookies
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies SessionCookies) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// LoginView tells the login page which notice to show.
type LoginView struct {
	Error  bool `json:"error"`
	Logout bool `json:"logout"`
}

// RefreshResponse carries a new access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// LoginForm godoc
// @Summary Login view
// @Tags auth
// @Produce json
// @Success 200 {object} Page
// @Router /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	q := c.QueryParams()
	return render(c, http.StatusOK, LoginView{Error: q.Has("error"), Logout: q.Has("logout")})
}

// Login godoc
// @Summary Log in
// @Description Sets the access_token and refresh_token cookies and redirects home.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 302
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return redirect(c, "/login?error")
	}
	if err := c.Validate(&req); err != nil {
		return redirect(c, "/login?error")
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return redirect(c, "/login?error")
		}
		return err
	}

	h.cookies.set(c, session)
	return redirect(c, "/")
}

// Logout godoc
// @Summary Log out
// @Description Revokes the current tokens and clears the cookies.
// @Tags auth
// @Success 302
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	var (
		accessID string
		expiry   time.Time
	)
	if claims := appmw.ClaimsFrom(c); claims != nil {
		accessID = claims.ID
		if claims.ExpiresAt != nil {
			expiry = claims.ExpiresAt.Time
		}
	}

	if err := h.authService.Logout(c.Request().Context(), refreshTokenFrom(c), accessID, expiry); err != nil {
		return err
	}

	h.cookies.clear(c)
	return redirect(c, "/login?logout")
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Produce json
// @Param refresh_token formData string false "Refresh token, when not sent as cookie"
// @Success 200 {object} RefreshResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := refreshTokenFrom(c)
	if token == "" {
		return apperrors.ErrInvalidToken
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}

	h.cookies.setAccess(c, accessToken)
	return c.JSON(http.StatusOK, RefreshResponse{AccessToken: accessToken})
}
