package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories so a service can run several of them in one transaction.
type Store interface {
	Users() UserRepository
	Roles() RoleRepository
	Categories() CategoryRepository
	Tags() TagRepository
	Articles() ArticleRepository

	// WithTransaction runs fn with a Store bound to a single database
	// transaction. Returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db *gorm.DB
}

// NewStore builds a GORM-backed Store.
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Users() UserRepository           { return NewUserRepository(s.db) }
func (s *store) Roles() RoleRepository           { return NewRoleRepository(s.db) }
func (s *store) Categories() CategoryRepository { return NewCategoryRepository(s.db) }
func (s *store) Tags() TagRepository             { return NewTagRepository(s.db) }
func (s *store) Articles() ArticleRepository     { return NewArticleRepository(s.db) }

// WithTransaction executes fn within a database transaction.
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &store{db: tx})
	})
}
