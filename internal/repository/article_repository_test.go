package repository_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blog/internal/model"
)

func tagNames(a *model.Article) []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func TestArticleRepository_CreateFind(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s, "a@x.com", model.RoleUser)

	article := createArticle(t, s, author, "First", "go", "web")

	found, err := s.Articles().FindByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", found.Title)
	assert.Equal(t, author.ID, found.AuthorID)
	assert.Equal(t, []string{"go", "web"}, tagNames(found))

	ok, err := s.Articles().Exists(ctx, article.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArticleRepository_UpdateReplacesTags(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s, "a@x.com", model.RoleUser)
	article := createArticle(t, s, author, "First", "go", "web")

	rust, _, err := s.Tags().FindOrCreate(ctx, "rust")
	require.NoError(t, err)

	article.Title = "Second"
	article.CategoryID = 2
	article.Tags = []model.Tag{*rust}
	require.NoError(t, s.Articles().Update(ctx, article))

	found, err := s.Articles().FindByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", found.Title)
	assert.Equal(t, uint(2), found.CategoryID)
	assert.Equal(t, []string{"rust"}, tagNames(found))

	// replaced tags stay in the tag table
	_, err = s.Tags().FindByName(ctx, "go")
	assert.NoError(t, err)
}

func TestArticleRepository_DeleteByAuthor(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@x.com", model.RoleUser)
	b := createUser(t, s, "b@x.com", model.RoleUser)
	t1 := createArticle(t, s, a, "T1", "go")
	t2 := createArticle(t, s, a, "T2")
	t3 := createArticle(t, s, b, "T3", "go")

	n, err := s.Articles().DeleteByAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for _, id := range []uint{t1.ID, t2.ID} {
		_, err := s.Articles().FindByID(ctx, id)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}
	left, err := s.Articles().FindByID(ctx, t3.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tagNames(left))
}

func TestArticleRepository_Listings(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@x.com", model.RoleUser)
	b := createUser(t, s, "b@x.com", model.RoleUser)
	first := createArticle(t, s, a, "first")
	second := createArticle(t, s, b, "second")

	all, err := s.Articles().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	mine, err := s.Articles().ListByAuthor(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	inCategory, err := s.Articles().ListByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, inCategory, 2)

	none, err := s.Articles().ListByCategory(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}
