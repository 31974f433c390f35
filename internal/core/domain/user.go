package domain

import "time"

// Role represents a capability granted to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// KnownRole reports whether r is one of the roles the service recognises.
func KnownRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User models an account in the awards catalogue backend.
//
// ActivationToken is non-nil exactly while activation is pending and is
// cleared once, on successful activation. ResetToken and ResetTokenExpiry
// are either both nil or both set.
type User struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Enabled          bool       `json:"enabled"`
	Roles            []Role     `json:"roles"`
	ActivationToken  *string    `json:"-"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
