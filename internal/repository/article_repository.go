package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog/internal/model"
)

// ArticleRepository defines article persistence operations.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, article *model.Article) error
	DeleteByAuthor(ctx context.Context, authorID uint) (int64, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Article, error)
	List(ctx context.Context) ([]model.Article, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]model.Article, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.Article, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create inserts the article and links its (already persisted) tags.
func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

// Update saves the article columns and replaces its tag set with article.Tags.
func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(article).Error; err != nil {
		return err
	}
	return db.Model(article).Association("Tags").Replace(article.Tags)
}

// Delete removes the article and its tag links. Tags themselves stay.
func (r *articleRepository) Delete(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(article).Error
}

// DeleteByAuthor removes every article written by authorID and returns how many went.
func (r *articleRepository) DeleteByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var articles []model.Article
	if err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&articles).Error; err != nil {
		return 0, err
	}
	for i := range articles {
		if err := r.Delete(ctx, &articles[i]); err != nil {
			return 0, err
		}
	}
	return int64(len(articles)), nil
}

func (r *articleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Article{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).Preload("Tags").First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context) ([]model.Article, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *articleRepository) ListByAuthor(ctx context.Context, authorID uint) ([]model.Article, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("author_id = ?", authorID))
}

func (r *articleRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.Article, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("category_id = ?", categoryID))
}

func (r *articleRepository) list(_ context.Context, q *gorm.DB) ([]model.Article, error) {
	var articles []model.Article
	if err := q.Preload("Tags").Order("created_at DESC").Order("id DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}
