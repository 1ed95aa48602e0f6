package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_FindOrCreateIsIdempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first, created, err := s.Tags().FindOrCreate(ctx, "golang")
	require.NoError(t, err)
	assert.True(t, created)
	second, created, err := s.Tags().FindOrCreate(ctx, "golang")
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, first.ID, second.ID)

	count, err := s.Tags().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTagRepository_NamesAreCaseSensitive(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	lower, _, err := s.Tags().FindOrCreate(ctx, "go")
	require.NoError(t, err)
	upper, _, err := s.Tags().FindOrCreate(ctx, "Go")
	require.NoError(t, err)

	assert.NotEqual(t, lower.ID, upper.ID)
}

func TestCategoryAndRoleRepositories(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	categories, err := s.Categories().List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	c, err := s.Categories().FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Programming", c.Name)

	roles, err := s.Roles().List(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	_, err = s.Roles().FindByID(ctx, 99)
	assert.Error(t, err)
}
