package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog/internal/model"
)

// TagRepository finds and lazily creates tags by name.
type TagRepository interface {
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	FindOrCreate(ctx context.Context, name string) (tag *model.Tag, created bool, err error)
	Count(ctx context.Context) (int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindOrCreate returns the tag called name, inserting it if needed.
// The insert ignores unique-key conflicts and re-reads, so two requests
// racing on the same new name end up with the same row.
func (r *tagRepository) FindOrCreate(ctx context.Context, name string) (*model.Tag, bool, error) {
	tag, err := r.FindByName(ctx, name)
	if err == nil {
		return tag, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&model.Tag{Name: name})
	if res.Error != nil {
		return nil, false, res.Error
	}

	// on a conflict the row belongs to a concurrent request; only a locking
	// read sees it past a REPEATABLE READ snapshot
	var stored model.Tag
	if err := sharedByName(r.db.WithContext(ctx), name).First(&stored).Error; err != nil {
		return nil, false, err
	}
	return &stored, res.RowsAffected > 0, nil
}

// sharedByName selects a tag by name with a shared lock, which reads the
// latest committed row. SQLite has no row locks and drops the clause.
func sharedByName(db *gorm.DB, name string) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "SHARE"}).Where("name = ?", name)
}

func (r *tagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Tag{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
