package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blog/internal/model"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	user := createUser(t, s, "a@x.com", model.RoleUser)
	require.NotZero(t, user.ID)

	byID, err := s.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
	assert.Equal(t, []model.RoleName{model.RoleUser}, byID.RoleNames())

	byEmail, err := s.Users().FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = s.Users().FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	ok, err := s.Users().Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Users().Exists(ctx, user.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	s := newStore(t)
	createUser(t, s, "dup@x.com", model.RoleUser)

	err := s.Users().Create(context.Background(), &model.User{Email: "dup@x.com", FullName: "x", PasswordHash: "h"})
	assert.Error(t, err)
}

func TestUserRepository_UpdateKeepsRoles(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	user := createUser(t, s, "a@x.com", model.RoleUser)

	code := "code-1"
	user.FullName = "Renamed"
	user.ConfirmCode = &code
	user.Roles = nil
	require.NoError(t, s.Users().Update(ctx, user))

	reloaded, err := s.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", reloaded.FullName)
	require.NotNil(t, reloaded.ConfirmCode)
	assert.Equal(t, "code-1", *reloaded.ConfirmCode)
	assert.True(t, reloaded.HasRole(model.RoleUser))

	reloaded.ConfirmCode = nil
	require.NoError(t, s.Users().Update(ctx, reloaded))
	cleared, err := s.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.ConfirmCode)
}

func TestUserRepository_ReplaceRoles(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	user := createUser(t, s, "a@x.com", model.RoleUser)

	admin, err := s.Roles().FindByName(ctx, model.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, s.Users().ReplaceRoles(ctx, user, []model.Role{*admin}))

	reloaded, err := s.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.RoleName{model.RoleAdmin}, reloaded.RoleNames())
}

func TestUserRepository_DeleteAndList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@x.com", model.RoleUser)
	createUser(t, s, "b@x.com", model.RoleAdmin, model.RoleUser)

	users, err := s.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Len(t, users[1].Roles, 2)

	require.NoError(t, s.Users().Delete(ctx, a))

	users, err = s.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "b@x.com", users[0].Email)
}
