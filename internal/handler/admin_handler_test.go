package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "blog/internal/errors"
	"blog/internal/model"
	"blog/internal/service"
)

func adminRoutes(svc service.AdminUserService) *echo.Echo {
	e := newTestEcho()
	h := NewAdminHandler(svc)
	e.GET("/admin/users", h.List)
	e.POST("/admin/users/edit/:id", h.Edit)
	e.POST("/admin/users/delete/:id", h.Delete)
	return e
}

func TestAdminHandler_List(t *testing.T) {
	svc := new(MockAdminUserService)
	svc.On("List", mock.Anything, root).Return([]model.User{{ID: 1, Email: "a@x.com"}}, nil)

	rec := serve(adminRoutes(svc), root, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestAdminHandler_StaleAdminTokenIsForbidden(t *testing.T) {
	svc := new(MockAdminUserService)
	svc.On("List", mock.Anything, root).Return(nil, apperrors.ErrForbidden)

	rec := serve(adminRoutes(svc), root, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/error/403", rec.Header().Get(echo.HeaderLocation))
}

func TestAdminHandler_EditBindsRoleSet(t *testing.T) {
	svc := new(MockAdminUserService)
	svc.On("Edit", mock.Anything, root, uint(4), service.AdminEditInput{
		Email:    "b@x.com",
		FullName: "Bob",
		RoleIDs:  []uint{1, 2},
	}).Return(&model.User{ID: 4}, nil)

	rec := serve(adminRoutes(svc), root, formRequest(http.MethodPost, "/admin/users/edit/4", url.Values{
		"email": {"b@x.com"}, "full_name": {"Bob"}, "roles": {"1", "2"},
	}))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/users", rec.Header().Get(echo.HeaderLocation))
	svc.AssertExpectations(t)
}

func TestAdminHandler_EditDuplicateEmailGoesBack(t *testing.T) {
	svc := new(MockAdminUserService)
	svc.On("Edit", mock.Anything, root, uint(4), mock.Anything).Return(nil, apperrors.ErrUserAlreadyExists)

	rec := serve(adminRoutes(svc), root, formRequest(http.MethodPost, "/admin/users/edit/4", url.Values{
		"email": {"a@x.com"}, "full_name": {"Bob"}, "roles": {"2"},
	}))

	assert.Equal(t, "/admin/users/edit/4", rec.Header().Get(echo.HeaderLocation))
}

func TestAdminHandler_EditEmptyRoleSetIsFatal(t *testing.T) {
	svc := new(MockAdminUserService)
	svc.On("Edit", mock.Anything, root, uint(4), mock.Anything).Return(nil, apperrors.ErrInvalidArgument)

	rec := serve(adminRoutes(svc), root, formRequest(http.MethodPost, "/admin/users/edit/4", url.Values{
		"email": {"b@x.com"}, "full_name": {"Bob"},
	}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminHandler_Delete(t *testing.T) {
	svc := new(MockAdminUserService)
	svc.On("Delete", mock.Anything, root, uint(4)).Return(nil)
	svc.On("Delete", mock.Anything, root, uint(5)).Return(apperrors.ErrUserNotFound)
	e := adminRoutes(svc)

	for _, target := range []string{"/admin/users/delete/4", "/admin/users/delete/5"} {
		rec := serve(e, root, httptest.NewRequest(http.MethodPost, target, nil))
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/admin/users", rec.Header().Get(echo.HeaderLocation), target)
	}
	svc.AssertExpectations(t)
}
