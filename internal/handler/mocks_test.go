package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"blog/internal/model"
	"blog/internal/policy"
	"blog/internal/service"
)

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) Home(ctx context.Context) (*service.HomeView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HomeView), args.Error(1)
}

func (m *MockArticleService) ByCategory(ctx context.Context, categoryID uint) (*service.CategoryView, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CategoryView), args.Error(1)
}

func (m *MockArticleService) CreateForm(ctx context.Context) (*service.ArticleForm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleForm), args.Error(1)
}

func (m *MockArticleService) Create(ctx context.Context, p policy.Principal, in service.ArticleInput) (*model.Article, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Details(ctx context.Context, viewer policy.Principal, id uint) (*service.ArticleView, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleView), args.Error(1)
}

func (m *MockArticleService) EditForm(ctx context.Context, p policy.Principal, id uint) (*service.ArticleForm, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleForm), args.Error(1)
}

func (m *MockArticleService) Edit(ctx context.Context, p policy.Principal, id uint, in service.ArticleInput) (*model.Article, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) DeleteForm(ctx context.Context, p policy.Principal, id uint) (*service.ArticleView, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleView), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, p policy.Principal, id uint) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Profile(ctx context.Context, p policy.Principal) (*service.ProfileView, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfileView), args.Error(1)
}

func (m *MockUserService) EditForm(ctx context.Context, p policy.Principal, id uint) (*model.User, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Edit(ctx context.Context, p policy.Principal, id uint, in service.UserEditInput) (*model.User, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) RequestReset(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ResetForm(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ResendCode(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ApplyReset(ctx context.Context, id uint, in service.ResetInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Issue(ctx context.Context, user *model.User) (*service.Session, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken, accessTokenID string, accessExpiry time.Time) error {
	args := m.Called(ctx, refreshToken, accessTokenID, accessExpiry)
	return args.Error(0)
}

type MockAdminUserService struct {
	mock.Mock
}

func (m *MockAdminUserService) List(ctx context.Context, p policy.Principal) ([]model.User, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockAdminUserService) EditForm(ctx context.Context, p policy.Principal, id uint) (*service.AdminUserForm, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminUserForm), args.Error(1)
}

func (m *MockAdminUserService) Edit(ctx context.Context, p policy.Principal, id uint, in service.AdminEditInput) (*model.User, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAdminUserService) DeleteForm(ctx context.Context, p policy.Principal, id uint) (*service.AdminDeleteView, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminDeleteView), args.Error(1)
}

func (m *MockAdminUserService) Delete(ctx context.Context, p policy.Principal, id uint) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}
