package model

import "fmt"

// RoleName is the closed set of roles a user can hold.
type RoleName string

const (
	RoleAdmin RoleName = "ROLE_ADMIN"
	RoleUser  RoleName = "ROLE_USER"
)

// AllRoleNames lists every role, in seeding order.
var AllRoleNames = []RoleName{RoleAdmin, RoleUser}

// ParseRoleName maps a stored or token role string onto the enumeration.
func ParseRoleName(s string) (RoleName, error) {
	switch RoleName(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Label is the short display name ("ADMIN", "USER").
func (r RoleName) Label() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	default:
		return string(r)
	}
}

// Role is immutable reference data seeded at startup.
type Role struct {
	ID   uint     `json:"id" gorm:"primaryKey"`
	Name RoleName `json:"name" gorm:"size:50;uniqueIndex;not null"`
}
