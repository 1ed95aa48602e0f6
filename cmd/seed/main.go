package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/model"
	"blog/internal/repository"
	"blog/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(err)
	}
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "blog-seed"})

	gormDB, err := db.Open(cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB, cfg.Database.Reset); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
	if err := db.SeedReference(gormDB, cfg.Seed.Categories); err != nil {
		log.Fatal().Err(err).Msg("seed roles and categories")
	}
	log.Info().Strs("categories", cfg.Seed.Categories).Msg("reference data seeded")

	password := cfg.Seed.AdminPassword
	generated := password == ""
	if generated {
		password = uuid.NewString()
	}

	created, err := seedAdmin(context.Background(), repository.NewStore(gormDB), cfg.Seed, password)
	if err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}

	switch {
	case !created:
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("admin already exists, left untouched")
	case generated:
		log.Info().Str("email", cfg.Seed.AdminEmail).Str("password", password).Msg("admin created with generated password")
	default:
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("admin created")
	}
}

// seedAdmin creates the initial administrator unless the email is taken.
func seedAdmin(ctx context.Context, store repository.Store, seed config.SeedConfig, password string) (created bool, err error) {
	err = store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		_, err := tx.Users().FindByEmail(ctx, seed.AdminEmail)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check admin %s: %w", seed.AdminEmail, err)
		}

		roles := make([]model.Role, 0, len(model.AllRoleNames))
		for _, name := range model.AllRoleNames {
			role, err := tx.Roles().FindByName(ctx, name)
			if err != nil {
				return fmt.Errorf("load role %s: %w", name, err)
			}
			roles = append(roles, *role)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		if err := tx.Users().Create(ctx, &model.User{
			Email:        seed.AdminEmail,
			FullName:     seed.AdminName,
			PasswordHash: string(hashed),
			Roles:        roles,
		}); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		created = true
		return nil
	})
	return created, err
}
