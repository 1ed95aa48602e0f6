package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string `env:"SERVER_PORT, default=8080"`
	Env         string `env:"APP_ENV, default=development"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	BaseURL     string `env:"BASE_URL, default=http://localhost:8080"`
	SwaggerHost string `env:"SWAGGER_HOST"`

	// MaxPictureBytes caps uploaded article and profile pictures.
	MaxPictureBytes int64 `env:"MAX_PICTURE_BYTES, default=5242880"`
	CSRFEnabled     bool  `env:"CSRF_ENABLED, default=true"`

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Mail     MailConfig
	Seed     SeedConfig
}

// DatabaseConfig selects the relational store.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER, default=mysql"`
	DSN    string `env:"DB_DSN, default=user:password@tcp(localhost:3306)/blog?charset=utf8mb4&parseTime=True&loc=Local"`
	Reset  bool   `env:"RESET_DB, default=false"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET, default=change-me"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL, default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	SecureCookies bool          `env:"SECURE_COOKIES, default=false"`
}

// MailConfig configures outbound SMTP. An empty Host logs mails instead of sending them.
type MailConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM, default=no-reply@blog.local"`
}

// SeedConfig is read by cmd/seed only.
type SeedConfig struct {
	AdminEmail    string   `env:"SEED_ADMIN_EMAIL, default=admin@blog.local"`
	AdminPassword string   `env:"SEED_ADMIN_PASSWORD"`
	AdminName     string   `env:"SEED_ADMIN_NAME, default=Administrator"`
	Categories    []string `env:"SEED_CATEGORIES, default=Programming,Science,Travel,Lifestyle"`
}

// Load builds Config from the process environment and panics on malformed values.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

// LoadWith builds Config from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
