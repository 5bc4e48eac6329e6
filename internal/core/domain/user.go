package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models a registered identity. Email doubles as the username: the two
// are interchangeable, and lookups always go through the normalized
// (lowercased) email.
type User struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"-"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name,omitempty"`
	Roles        []string          `json:"roles,omitempty"`
	Claims       map[string]string `json:"claims,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// DisplayName joins first and last name into a single trimmed string. A user
// without any name yields an empty string, never a padded one.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
