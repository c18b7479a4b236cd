package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Roles is the closed set of role names a user can hold.
var Roles = []string{RoleAdmin, RoleUser}

// User is an account that owns associations to reference data and projects.
// Email doubles as the username and is stored lower-cased.
type User struct {
	ID           uint                        `json:"id" gorm:"primaryKey"`
	FullName     string                      `json:"fullName" gorm:"size:100;not null"`
	Email        string                      `json:"email" gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string                      `json:"-" gorm:"not null"`
	Roles        datatypes.JSONSlice[string] `json:"roles" gorm:"type:json"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}
