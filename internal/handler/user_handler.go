package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "blog/internal/errors"
	appmw "blog/internal/middleware"
	"blog/internal/service"
)

// sendAgainField on the reset form asks for a new code instead of applying one.
const sendAgainField = "send_again"

// UserHandler serves registration, profiles and the forgot-password flow.
type UserHandler struct {
	users      service.UserService
	auth       service.AuthService
	cookies    SessionCookies
	maxPicture int64
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService, auth service.AuthService, cookies SessionCookies, maxPicture int64) *UserHandler {
	return &UserHandler{users: users, auth: auth, cookies: cookies, maxPicture: maxPicture}
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Email           string `form:"email" validate:"required,email,max=255"`
	FullName        string `form:"full_name" validate:"required,max=255"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// UserEditRequest is the profile form. Leave both password fields empty to keep the password.
type UserEditRequest struct {
	Email           string `form:"email" validate:"required,email,max=255"`
	FullName        string `form:"full_name" validate:"required,max=255"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// ForgotPasswordRequest starts a reset.
type ForgotPasswordRequest struct {
	Email string `form:"email"`
}

// ResetPasswordRequest applies a reset.
type ResetPasswordRequest struct {
	ConfirmCode     string `form:"confirm_code"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// ResetView identifies the account on the reset page without exposing it.
type ResetView struct {
	UserID uint `json:"user_id"`
}

// MessageView is a static notice.
type MessageView struct {
	Message string `json:"message"`
}

// RegisterForm godoc
// @Summary Registration view
// @Tags users
// @Produce json
// @Success 200 {object} Page
// @Router /register [get]
func (h *UserHandler) RegisterForm(c echo.Context) error {
	return render(c, http.StatusOK, nil)
}

// Register godoc
// @Summary Register a new user
// @Description Redirects to /login on success, back to /register otherwise.
// @Tags users
// @Accept multipart/form-data
// @Param email formData string true "Email"
// @Param full_name formData string true "Full name"
// @Param password formData string true "Password"
// @Param confirm_password formData string true "Password confirmation"
// @Param picture formData file false "Profile picture"
// @Success 302
// @Router /register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return redirect(c, "/register")
	}
	if err := c.Validate(&req); err != nil {
		return redirect(c, "/register")
	}
	picture, err := readPicture(c, h.maxPicture)
	if err != nil {
		return formRedirect(c, err, "/register")
	}

	_, err = h.users.Register(c.Request().Context(), service.RegisterInput{
		Email:           req.Email,
		FullName:        req.FullName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Picture:         picture,
	})
	if err != nil {
		return formRedirect(c, err, "/register")
	}
	return redirect(c, "/login")
}

// Profile godoc
// @Summary Own profile with authored articles
// @Tags users
// @Produce json
// @Success 200 {object} Page
// @Router /profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	view, err := h.users.Profile(c.Request().Context(), appmw.PrincipalFrom(c))
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, view)
}

// EditForm godoc
// @Summary Profile edit view
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Page
// @Success 302 "Not the caller's own account"
// @Router /user/edit/{id} [get]
func (h *UserHandler) EditForm(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/profile")
	}
	user, err := h.users.EditForm(c.Request().Context(), appmw.PrincipalFrom(c), id)
	if err != nil {
		return h.ownerError(c, err)
	}
	return render(c, http.StatusOK, user)
}

// Edit godoc
// @Summary Edit own profile
// @Tags users
// @Accept multipart/form-data
// @Param id path int true "User ID"
// @Param email formData string true "Email"
// @Param full_name formData string true "Full name"
// @Param password formData string false "New password"
// @Param confirm_password formData string false "New password confirmation"
// @Param picture formData file false "Profile picture"
// @Success 302
// @Router /user/edit/{id} [post]
func (h *UserHandler) Edit(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/profile")
	}
	back := c.Request().URL.Path

	var req UserEditRequest
	if err := c.Bind(&req); err != nil {
		return redirect(c, back)
	}
	if err := c.Validate(&req); err != nil {
		return redirect(c, back)
	}
	picture, err := readPicture(c, h.maxPicture)
	if err != nil {
		return formRedirect(c, err, back)
	}

	ctx := c.Request().Context()
	principal := appmw.PrincipalFrom(c)
	user, err := h.users.Edit(ctx, principal, id, service.UserEditInput{
		Email:           req.Email,
		FullName:        req.FullName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Picture:         picture,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) || errors.Is(err, apperrors.ErrEmptyEmail) {
			return redirect(c, back)
		}
		return h.ownerError(c, err)
	}

	// the token names the old email once it changes
	if user.Email != principal.Email {
		session, err := h.auth.Issue(ctx, user)
		if err != nil {
			return err
		}
		h.cookies.set(c, session)
	}
	return redirect(c, "/profile")
}

// ForgotPasswordForm godoc
// @Summary Forgot-password view
// @Tags password
// @Produce json
// @Success 200 {object} Page
// @Router /forgot-password-input-email [get]
func (h *UserHandler) ForgotPasswordForm(c echo.Context) error {
	return render(c, http.StatusOK, nil)
}

// ForgotPassword godoc
// @Summary Request a password reset code
// @Description Mails a confirmation code and redirects to /send-mail.
// @Tags password
// @Accept x-www-form-urlencoded
// @Param email formData string true "Account email"
// @Success 302
// @Router /forgot-password-input-email [post]
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	const back = "/forgot-password-input-email"
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return redirect(c, back)
	}

	if _, err := h.users.RequestReset(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, apperrors.ErrEmptyEmail) || errors.Is(err, apperrors.ErrUserNotFound) {
			return redirect(c, back)
		}
		return err
	}
	return redirect(c, "/send-mail")
}

// SendMail godoc
// @Summary "Check your mail" notice
// @Tags password
// @Produce json
// @Success 200 {object} Page
// @Router /send-mail [get]
func (h *UserHandler) SendMail(c echo.Context) error {
	return render(c, http.StatusOK, MessageView{Message: "A confirmation code was sent to your email address."})
}

// ResetForm godoc
// @Summary Reset-entry view
// @Tags password
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Page
// @Router /user/forgot-password/{id} [get]
func (h *UserHandler) ResetForm(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/login")
	}
	user, err := h.users.ResetForm(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return redirect(c, "/login")
		}
		return err
	}
	return render(c, http.StatusOK, ResetView{UserID: user.ID})
}

// ResetPassword godoc
// @Summary Apply a reset or ask for a new code
// @Description With send_again set a new code is mailed; otherwise the code and passwords are checked.
// @Tags password
// @Accept x-www-form-urlencoded
// @Param id path int true "User ID"
// @Param confirm_code formData string false "Confirmation code"
// @Param password formData string false "New password"
// @Param confirm_password formData string false "New password confirmation"
// @Param send_again formData string false "Request another code"
// @Success 302
// @Router /user/forgot-password/{id} [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/login")
	}
	back := c.Request().URL.Path
	ctx := c.Request().Context()

	if sendAgain(c) {
		if _, err := h.users.ResendCode(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return redirect(c, "/login")
			}
			return err
		}
		return redirect(c, back)
	}

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return redirect(c, back)
	}

	err := h.users.ApplyReset(ctx, id, service.ResetInput{
		Code:            req.ConfirmCode,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	switch {
	case err == nil:
		return redirect(c, "/login")
	case errors.Is(err, apperrors.ErrUserNotFound):
		return redirect(c, "/login")
	case errors.Is(err, apperrors.ErrPasswordMismatch), errors.Is(err, apperrors.ErrConfirmCodeMismatch):
		return redirect(c, back)
	default:
		return err
	}
}

// ownerError redirects denied or missing profile edits to the caller's own profile.
func (h *UserHandler) ownerError(c echo.Context, err error) error {
	if errors.Is(err, apperrors.ErrUserNotFound) || errors.Is(err, apperrors.ErrForbidden) {
		return redirect(c, "/profile")
	}
	return err
}

// sendAgain reports whether the reset form carries the send_again field, with any value.
func sendAgain(c echo.Context) bool {
	params, err := c.FormParams()
	if err != nil {
		return false
	}
	_, ok := params[sendAgainField]
	return ok
}
