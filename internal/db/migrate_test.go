package db_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/db"
	"blog/internal/db/dbtest"
	"blog/internal/model"
)

func TestSeedReference_Idempotent(t *testing.T) {
	gdb := dbtest.New(t)

	require.NoError(t, db.SeedReference(gdb, append(dbtest.DefaultCategories, "Music")))

	var roles []model.Role
	require.NoError(t, gdb.Order("id").Find(&roles).Error)
	require.Len(t, roles, 2)
	assert.Equal(t, model.RoleAdmin, roles[0].Name)
	assert.Equal(t, model.RoleUser, roles[1].Name)

	var count int64
	require.NoError(t, gdb.Model(&model.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(dbtest.DefaultCategories)+1), count)
}

func TestMigrate_Reset(t *testing.T) {
	gdb := dbtest.New(t)
	require.NoError(t, gdb.Create(&model.Tag{Name: "go"}).Error)

	require.NoError(t, db.Migrate(gdb, true))

	var count int64
	require.NoError(t, gdb.Model(&model.Tag{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.True(t, gdb.Migrator().HasTable("articles_tags"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := db.Open("oracle", "dsn", zerolog.Nop())
	assert.ErrorContains(t, err, "unsupported database driver")
}
