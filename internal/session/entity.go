// internal/session/entity.go
package session

import "strings"

// User is the signed-in user's cached profile, as returned by the
// sign-in/sign-up endpoints.
type User struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// GetDisplayName returns display name (full name or email)
func (u *User) GetDisplayName() string {
	fullName := u.GetFullName()
	if fullName != "" {
		return fullName
	}
	return u.Email
}

// IsAdmin reports whether the cached profile carries the admin role.
func (u *User) IsAdmin() bool {
	for _, role := range u.Roles {
		if strings.EqualFold(role, "admin") || strings.EqualFold(role, "role_admin") {
			return true
		}
	}
	return false
}

// Snapshot is the full session state published to subscribers after every
// change: the token plus the cached profile, always replaced together.
type Snapshot struct {
	Token string
	User  *User
}

// Authenticated reports whether the snapshot carries a token.
func (s Snapshot) Authenticated() bool {
	return s.Token != ""
}
