package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"blog/internal/auth"
	"blog/internal/policy"
)

// Context keys set by this package.
const (
	tokenKey     = "token"
	claimsKey    = "access_claims"
	principalKey = "principal"
)

// Cookie names carrying the token pair.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// JWT parses an access token from the Authorization header or the access
// cookie when one is present. Requests without a valid token continue
// anonymously; guarded routes are rejected later by Guard.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    jwtService.Secret(),
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    tokenKey,
		TokenLookup:   "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + AccessCookie,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(echo.Context, error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// Principal turns the parsed token into a policy.Principal. Refresh tokens
// and revoked access tokens yield the anonymous principal.
func Principal(tokens auth.TokenStoreInterface, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(principalKey, policy.Anonymous())

			token, ok := c.Get(tokenKey).(*jwt.Token)
			if !ok || !token.Valid {
				return next(c)
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.Type != auth.TokenAccess || claims.Email == "" {
				return next(c)
			}

			revoked, err := tokens.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
			if err != nil {
				log.Warn().Err(err).Msg("blacklist lookup failed")
			}
			if revoked {
				return next(c)
			}

			c.Set(claimsKey, claims)
			c.Set(principalKey, policy.Principal{
				UserID: claims.UserID,
				Email:  claims.Email,
				Roles:  claims.RoleNames(),
			})
			return next(c)
		}
	}
}

// PrincipalFrom returns the request's principal, anonymous when none was set.
func PrincipalFrom(c echo.Context) policy.Principal {
	p, ok := c.Get(principalKey).(policy.Principal)
	if !ok {
		return policy.Anonymous()
	}
	return p
}

// ClaimsFrom returns the validated access token claims, or nil for anonymous requests.
func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}

// WithPrincipal stores p on the context. Tests use it to skip token parsing.
func WithPrincipal(c echo.Context, p policy.Principal) {
	c.Set(principalKey, p)
}
