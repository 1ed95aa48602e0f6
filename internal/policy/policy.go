// Package policy decides whether a principal may mutate an article or a
// user profile. It is pure: callers resolve the principal against the store
// first and pass it in explicitly.
package policy

import "blog/internal/model"

// Principal is the identity behind a request. The zero value is anonymous.
type Principal struct {
	UserID uint
	Email  string
	Roles  []model.RoleName
}

// Anonymous returns the unauthenticated principal.
func Anonymous() Principal {
	return Principal{}
}

// FromUser builds a principal from a stored user and its loaded roles.
func FromUser(u *model.User) Principal {
	return Principal{UserID: u.ID, Email: u.Email, Roles: u.RoleNames()}
}

// IsAnonymous reports whether no one is authenticated.
func (p Principal) IsAnonymous() bool {
	return p.Email == ""
}

// Has reports whether the principal holds role.
func (p Principal) Has(role model.RoleName) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal holds ROLE_ADMIN.
func (p Principal) IsAdmin() bool {
	return p.Has(model.RoleAdmin)
}

// HasAnyRole reports whether p holds at least one of roles.
func HasAnyRole(p Principal, roles ...model.RoleName) bool {
	if p.IsAnonymous() {
		return false
	}
	for _, want := range roles {
		if grants(p, want) {
			return true
		}
	}
	return false
}

func grants(p Principal, role model.RoleName) bool {
	switch role {
	case model.RoleAdmin:
		return p.IsAdmin()
	case model.RoleUser:
		return p.Has(model.RoleUser)
	default:
		return false
	}
}

// CanModify reports whether p may edit or delete the article: it must be
// its author or an administrator. Anonymous principals never may.
func CanModify(p Principal, a *model.Article) bool {
	if p.IsAnonymous() || a == nil {
		return false
	}
	return p.IsAdmin() || (p.UserID != 0 && p.UserID == a.AuthorID)
}

// IsOwner reports whether the profile u belongs to p.
func IsOwner(p Principal, u *model.User) bool {
	if p.IsAnonymous() || u == nil {
		return false
	}
	return p.Email == u.Email
}
