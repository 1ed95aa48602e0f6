package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blog/internal/db/dbtest"
	"blog/internal/model"
	"blog/internal/repository"
)

func newStore(t *testing.T) repository.Store {
	t.Helper()
	return repository.NewStore(dbtest.New(t))
}

func createUser(t *testing.T, s repository.Store, email string, roles ...model.RoleName) *model.User {
	t.Helper()
	ctx := context.Background()

	user := &model.User{Email: email, FullName: email, PasswordHash: "hash"}
	for _, name := range roles {
		role, err := s.Roles().FindByName(ctx, name)
		require.NoError(t, err)
		user.Roles = append(user.Roles, *role)
	}
	require.NoError(t, s.Users().Create(ctx, user))
	return user
}

func createArticle(t *testing.T, s repository.Store, author *model.User, title string, tags ...string) *model.Article {
	t.Helper()
	ctx := context.Background()

	article := &model.Article{Title: title, Content: "body", AuthorID: author.ID, CategoryID: 1}
	for _, name := range tags {
		tag, _, err := s.Tags().FindOrCreate(ctx, name)
		require.NoError(t, err)
		article.Tags = append(article.Tags, *tag)
	}
	require.NoError(t, s.Articles().Create(ctx, article))
	return article
}

func TestStore_WithTransactionRollsBack(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, _, err := tx.Tags().FindOrCreate(ctx, "rollback"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Tags().FindByName(ctx, "rollback")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_WithTransactionCommits(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	err := s.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		_, _, err := tx.Tags().FindOrCreate(ctx, "commit")
		return err
	})
	require.NoError(t, err)

	tag, err := s.Tags().FindByName(ctx, "commit")
	require.NoError(t, err)
	assert.Equal(t, "commit", tag.Name)
}
