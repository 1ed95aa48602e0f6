package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "blog/internal/errors"
	"blog/internal/model"
)

func roleID(t *testing.T, f *fixture, name model.RoleName) uint {
	t.Helper()
	role, err := f.store.Roles().FindByName(context.Background(), name)
	require.NoError(t, err)
	return role.ID
}

func TestAdminUserService_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, pa := f.register(t, "a@x.com", "p1")

	_, err := f.admin.List(ctx, pa)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.admin.EditForm(ctx, pa, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.admin.Edit(ctx, pa, a.ID, AdminEditInput{Email: "a@x.com", RoleIDs: []uint{roleID(t, f, model.RoleAdmin)}})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.ErrorIs(t, f.admin.Delete(ctx, pa, a.ID), apperrors.ErrForbidden)

	assert.Equal(t, []model.RoleName{model.RoleUser}, f.reloadUser(t, a.ID).RoleNames())
}

func TestAdminUserService_ListAndForms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rootUser, _ := f.register(t, "root@x.com", "p")
	admin := f.promote(t, rootUser)
	a, pa := f.register(t, "a@x.com", "p1")
	_, err := f.articles.Create(ctx, pa, ArticleInput{Title: "T1", CategoryID: 1})
	require.NoError(t, err)

	users, err := f.admin.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	form, err := f.admin.EditForm(ctx, admin, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, form.User.ID)
	assert.Len(t, form.Roles, len(model.AllRoleNames))

	view, err := f.admin.DeleteForm(ctx, admin, a.ID)
	require.NoError(t, err)
	assert.Len(t, view.Articles, 1)

	_, err = f.admin.EditForm(ctx, admin, 404)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAdminUserService_EditReplacesRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rootUser, _ := f.register(t, "root@x.com", "p")
	admin := f.promote(t, rootUser)
	a, _ := f.register(t, "a@x.com", "p1")
	before := f.reloadUser(t, a.ID).PasswordHash

	edited, err := f.admin.Edit(ctx, admin, a.ID, AdminEditInput{
		Email:    "a@x.com",
		FullName: "Ann Admin",
		RoleIDs:  []uint{roleID(t, f, model.RoleAdmin)},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.RoleName{model.RoleAdmin}, edited.RoleNames())

	stored := f.reloadUser(t, a.ID)
	assert.Equal(t, []model.RoleName{model.RoleAdmin}, stored.RoleNames())
	assert.Equal(t, "Ann Admin", stored.FullName)
	assert.Equal(t, before, stored.PasswordHash)
}

func TestAdminUserService_EditRejectsBadRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rootUser, _ := f.register(t, "root@x.com", "p")
	admin := f.promote(t, rootUser)
	a, _ := f.register(t, "a@x.com", "p1")

	_, err := f.admin.Edit(ctx, admin, a.ID, AdminEditInput{Email: "changed@x.com", RoleIDs: nil})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = f.admin.Edit(ctx, admin, a.ID, AdminEditInput{Email: "changed@x.com", RoleIDs: []uint{99}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	stored := f.reloadUser(t, a.ID)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Equal(t, []model.RoleName{model.RoleUser}, stored.RoleNames())
}

func TestAdminUserService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rootUser, _ := f.register(t, "root@x.com", "p")
	admin := f.promote(t, rootUser)
	a, pa := f.register(t, "a@x.com", "p1")
	_, pb := f.register(t, "b@x.com", "p2")

	t1, err := f.articles.Create(ctx, pa, ArticleInput{Title: "T1", CategoryID: 1, TagString: "go"})
	require.NoError(t, err)
	t2, err := f.articles.Create(ctx, pa, ArticleInput{Title: "T2", CategoryID: 2, TagString: "go, web"})
	require.NoError(t, err)
	kept, err := f.articles.Create(ctx, pb, ArticleInput{Title: "B1", CategoryID: 1, TagString: "go"})
	require.NoError(t, err)

	require.NoError(t, f.admin.Delete(ctx, admin, a.ID))

	for _, id := range []uint{t1.ID, t2.ID} {
		_, err := f.articles.Details(ctx, admin, id)
		assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
	}
	_, err = f.admin.EditForm(ctx, admin, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	view, err := f.articles.Details(ctx, admin, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tagNames(view.Article.Tags))

	assert.ErrorIs(t, f.admin.Delete(ctx, admin, a.ID), apperrors.ErrUserNotFound)
}

func TestRoleLabels(t *testing.T) {
	roles := []model.Role{{ID: 1, Name: model.RoleAdmin}, {ID: 2, Name: model.RoleUser}}
	assert.Equal(t, []string{"ADMIN", "USER"}, roleLabels(roles))
	assert.Empty(t, roleLabels(nil))
}
