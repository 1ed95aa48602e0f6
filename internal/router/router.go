package router

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blog/internal/auth"
	"blog/internal/config"
	"blog/internal/handler"
	appmw "blog/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Article *handler.ArticleHandler
	Admin   *handler.AdminHandler
	Home    *handler.HomeHandler
	Health  *handler.HealthHandler
}

// Security is what the principal middleware needs to trust a token.
type Security struct {
	JWT    *auth.JWTService
	Tokens auth.TokenStoreInterface
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log zerolog.Logger, sec Security, h Handlers) {
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("blog"))
	if cfg.CSRFEnabled {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			Skipper:        skipCSRF,
			TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:_csrf",
			CookieName:     "_csrf",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   cfg.Auth.SecureCookies,
		}))
	}
	e.Use(appmw.JWT(sec.JWT))
	e.Use(appmw.Principal(sec.Tokens, log))
	e.Use(appmw.Guard(appmw.DefaultAccessTable()))

	e.GET("/healthz", h.Health.Liveness)
	e.GET("/healthz/ready", h.Health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/", h.Home.Home)
	e.GET("/category/:id", h.Home.Category)
	e.GET("/error/403", h.Home.Forbidden)

	e.GET("/login", h.Auth.LoginForm)
	e.POST("/login", h.Auth.Login)
	e.GET("/logout", h.Auth.Logout)
	e.POST("/auth/refresh", h.Auth.Refresh)

	e.GET("/register", h.User.RegisterForm)
	e.POST("/register", h.User.Register)
	e.GET("/profile", h.User.Profile)
	e.GET("/user/edit/:id", h.User.EditForm)
	e.POST("/user/edit/:id", h.User.Edit)
	e.GET("/forgot-password-input-email", h.User.ForgotPasswordForm)
	e.POST("/forgot-password-input-email", h.User.ForgotPassword)
	e.GET("/send-mail", h.User.SendMail)
	e.GET("/user/forgot-password/:id", h.User.ResetForm)
	e.POST("/user/forgot-password/:id", h.User.ResetPassword)

	e.GET("/article/:id", h.Article.Details)
	e.GET("/article/create", h.Article.CreateForm)
	e.POST("/article/create", h.Article.Create)
	e.GET("/article/edit/:id", h.Article.EditForm)
	e.POST("/article/edit/:id", h.Article.Edit)
	e.GET("/article/delete/:id", h.Article.DeleteForm)
	e.POST("/article/delete/:id", h.Article.Delete)

	admin := e.Group("/admin")
	admin.GET("/users", h.Admin.List)
	admin.GET("/users/edit/:id", h.Admin.EditForm)
	admin.POST("/users/edit/:id", h.Admin.Edit)
	admin.GET("/users/delete/:id", h.Admin.DeleteForm)
	admin.POST("/users/delete/:id", h.Admin.Delete)
}

// skipCSRF exempts machine endpoints and bearer-token clients, which do not
// ride on ambient cookies.
func skipCSRF(c echo.Context) bool {
	p := c.Request().URL.Path
	if p == "/metrics" || p == "/auth/refresh" || strings.HasPrefix(p, "/healthz") || strings.HasPrefix(p, "/swagger/") {
		return true
	}
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/healthz")
		},
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
