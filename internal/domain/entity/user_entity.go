package entity

import (
	"time"
)

// User is a registered account.
// Passwords are stored as bcrypt hashes in Password field
type User struct {
	ID        string
	FullName  string
	Email     string
	Password  string
	CreatedAt time.Time
}

// Role is derived from configuration, never persisted.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsAdmin reports whether u is the configured administrator. Comparison is
// exact; an empty admin email matches nobody.
func IsAdmin(u *User, adminEmail string) bool {
	if u == nil || adminEmail == "" {
		return false
	}
	return u.Email == adminEmail
}

func RoleFor(u *User, adminEmail string) Role {
	if IsAdmin(u, adminEmail) {
		return RoleAdmin
	}
	return RoleUser
}
