package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog/internal/model"
)

// Migrate creates or updates every table, dropping them first when reset is set.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		// join tables first; they reference users, roles, articles and tags
		for _, table := range []interface{}{"articles_tags", "users_roles"} {
			if err := db.Migrator().DropTable(table); err != nil {
				return fmt.Errorf("drop %v: %w", table, err)
			}
		}
		all := model.All()
		for i := len(all) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(all[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// SeedReference inserts the fixed roles and the given categories if missing.
func SeedReference(db *gorm.DB, categories []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range model.AllRoleNames {
			role := model.Role{Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error; err != nil {
				return fmt.Errorf("seed role %s: %w", name, err)
			}
		}
		for _, name := range categories {
			var existing model.Category
			err := tx.Where("name = ?", name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lookup category %s: %w", name, err)
			}
			if err := tx.Create(&model.Category{Name: name}).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", name, err)
			}
		}
		return nil
	})
}
