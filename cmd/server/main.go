package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"blog/docs"
	"blog/internal/auth"
	"blog/internal/cache"
	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/handler"
	"blog/internal/mail"
	"blog/internal/repository"
	"blog/internal/router"
	"blog/internal/service"
	"blog/pkg/logger"
)

// @title Blog API
// @version 1.0
// @description Server-rendered blog: articles with tags and categories, user profiles, password reset and admin user management.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Browsers use the access_token cookie instead.
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(err)
	}
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "blog",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if cfg.Database.Reset {
		log.Warn().Msg("RESET_DB=true, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.Database.Reset); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if err := db.SeedReference(gormDB, cfg.Seed.Categories); err != nil {
		log.Fatal().Err(err).Msg("seed reference data")
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	store := repository.NewStore(gormDB)
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	mailer := mail.New(cfg.Mail, logger.Component("mail"))
	sanitizer := service.NewSanitizer()

	authService := service.NewAuthService(store.Users(), jwtService, tokenStore)
	articleService := service.NewArticleService(store, sanitizer, log)
	userService := service.NewUserService(store, mailer, sanitizer, cfg.BaseURL, log)
	adminService := service.NewAdminUserService(store, sanitizer, log)

	cookies := handler.SessionCookies{
		Secure:     cfg.Auth.SecureCookies,
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	router.Register(e, cfg, logger.Component("http"),
		router.Security{JWT: jwtService, Tokens: tokenStore},
		router.Handlers{
			Auth:    handler.NewAuthHandler(authService, cookies),
			User:    handler.NewUserHandler(userService, authService, cookies, cfg.MaxPictureBytes),
			Article: handler.NewArticleHandler(articleService, cfg.MaxPictureBytes),
			Admin:   handler.NewAdminHandler(adminService),
			Home:    handler.NewHomeHandler(articleService),
			Health:  handler.NewHealthHandler(gormDB, cacheClient),
		},
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Str("swagger", cfg.BaseURL+"/swagger/index.html").Msg("starting server")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server exited")
}
