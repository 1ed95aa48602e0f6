package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "blog/internal/errors"
	appmw "blog/internal/middleware"
	"blog/internal/service"
)

const adminUsersPath = "/admin/users"

// AdminHandler serves /admin/**.
type AdminHandler struct {
	admin service.AdminUserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admin service.AdminUserService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// AdminEditRequest is the admin user form. Roles is the complete new role set.
type AdminEditRequest struct {
	Email           string `form:"email" validate:"required,email,max=255"`
	FullName        string `form:"full_name" validate:"required,max=255"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	Roles           []uint `form:"roles"`
}

// List godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {object} Page
// @Router /admin/users [get]
func (h *AdminHandler) List(c echo.Context) error {
	users, err := h.admin.List(c.Request().Context(), appmw.PrincipalFrom(c))
	if err != nil {
		return adminError(c, err)
	}
	return render(c, http.StatusOK, users)
}

// EditForm godoc
// @Summary Admin user edit view
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Page
// @Router /admin/users/edit/{id} [get]
func (h *AdminHandler) EditForm(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, adminUsersPath)
	}
	form, err := h.admin.EditForm(c.Request().Context(), appmw.PrincipalFrom(c), id)
	if err != nil {
		return adminError(c, err)
	}
	return render(c, http.StatusOK, form)
}

// Edit godoc
// @Summary Edit any user and replace its roles
// @Tags admin
// @Accept x-www-form-urlencoded
// @Param id path int true "User ID"
// @Param email formData string true "Email"
// @Param full_name formData string true "Full name"
// @Param password formData string false "New password"
// @Param confirm_password formData string false "New password confirmation"
// @Param roles formData []int true "Role IDs" collectionFormat(multi)
// @Success 302
// @Router /admin/users/edit/{id} [post]
func (h *AdminHandler) Edit(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, adminUsersPath)
	}
	back := c.Request().URL.Path

	var req AdminEditRequest
	if err := c.Bind(&req); err != nil {
		return redirect(c, back)
	}
	if err := c.Validate(&req); err != nil {
		return redirect(c, back)
	}

	_, err := h.admin.Edit(c.Request().Context(), appmw.PrincipalFrom(c), id, service.AdminEditInput{
		Email:           req.Email,
		FullName:        req.FullName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		RoleIDs:         req.Roles,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) || errors.Is(err, apperrors.ErrEmptyEmail) {
			return redirect(c, back)
		}
		return adminError(c, err)
	}
	return redirect(c, adminUsersPath)
}

// DeleteForm godoc
// @Summary Admin user delete confirmation view
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Page
// @Router /admin/users/delete/{id} [get]
func (h *AdminHandler) DeleteForm(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, adminUsersPath)
	}
	view, err := h.admin.DeleteForm(c.Request().Context(), appmw.PrincipalFrom(c), id)
	if err != nil {
		return adminError(c, err)
	}
	return render(c, http.StatusOK, view)
}

// Delete godoc
// @Summary Delete a user and every article it wrote
// @Tags admin
// @Param id path int true "User ID"
// @Success 302
// @Router /admin/users/delete/{id} [post]
func (h *AdminHandler) Delete(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, adminUsersPath)
	}
	if err := h.admin.Delete(c.Request().Context(), appmw.PrincipalFrom(c), id); err != nil {
		return adminError(c, err)
	}
	return redirect(c, adminUsersPath)
}

// adminError covers a token that still claims a revoked admin role.
func adminError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		return redirect(c, adminUsersPath)
	case errors.Is(err, apperrors.ErrForbidden):
		return redirect(c, appmw.ForbiddenPath)
	default:
		return err
	}
}
