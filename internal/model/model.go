// Package model holds the GORM entities of the blog.
package model

// All returns every entity in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Category{},
		&Tag{},
		&Article{},
	}
}
