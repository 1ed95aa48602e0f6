package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"blog/internal/metrics"
	"blog/internal/model"
	"blog/internal/policy"
)

// Redirect targets of the guard.
const (
	LoginPath     = "/login"
	ForbiddenPath = "/error/403"
)

// Rule requires one of Roles on every route whose pattern equals Pattern,
// or starts with it when Pattern ends in "/*".
type Rule struct {
	Pattern string
	Roles   []model.RoleName
}

func (r Rule) matches(routePath string) bool {
	if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return routePath == prefix || strings.HasPrefix(routePath, prefix+"/")
	}
	return routePath == r.Pattern
}

// AccessTable maps route patterns to required roles. Routes matching no rule are public.
type AccessTable []Rule

// Lookup returns the first rule matching routePath.
func (t AccessTable) Lookup(routePath string) (Rule, bool) {
	for _, r := range t {
		if r.matches(routePath) {
			return r, true
		}
	}
	return Rule{}, false
}

// DefaultAccessTable is the blog's route protection.
func DefaultAccessTable() AccessTable {
	members := []model.RoleName{model.RoleAdmin, model.RoleUser}
	return AccessTable{
		{Pattern: "/admin/*", Roles: []model.RoleName{model.RoleAdmin}},
		{Pattern: "/article/create", Roles: members},
		{Pattern: "/article/edit/:id", Roles: members},
		{Pattern: "/article/delete/:id", Roles: members},
		{Pattern: "/user/edit/:id", Roles: members},
		{Pattern: "/profile", Roles: members},
	}
}

// Guard enforces table against the matched route pattern. Anonymous
// requests go to the login page, authenticated ones lacking a role to the
// access-denied page.
func Guard(table AccessTable) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule, guarded := table.Lookup(c.Path())
			if !guarded {
				return next(c)
			}

			p := PrincipalFrom(c)
			if p.IsAnonymous() {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			if !policy.HasAnyRole(p, rule.Roles...) {
				metrics.AccessDeniedTotal.WithLabelValues(metrics.ScopeRoute).Inc()
				return c.Redirect(http.StatusFound, ForbiddenPath)
			}
			return next(c)
		}
	}
}
