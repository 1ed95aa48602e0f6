package model

import "time"

// User is an account that can author articles.
// Authored articles are looked up by AuthorID, never stored on the user.
type User struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Email        string  `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FullName     string  `json:"full_name" gorm:"size:255;not null"`
	PasswordHash string  `json:"-" gorm:"size:255;not null"`
	Picture      string  `json:"picture,omitempty"`
	ConfirmCode  *string `json:"-" gorm:"size:64"`
	Roles        []Role  `json:"roles" gorm:"many2many:users_roles;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleNames returns the names of the roles loaded on the user.
func (u *User) RoleNames() []RoleName {
	names := make([]RoleName, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the loaded roles contain name.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// HasPendingReset reports whether a confirmation code is outstanding.
func (u *User) HasPendingReset() bool {
	return u.ConfirmCode != nil && *u.ConfirmCode != ""
}
