package domain

import "time"

// User is the durable subject identity. The auth core only ever reads it;
// mutation belongs to the account flows.
type User struct {
	ID           string
	Name         string
	Email        string
	Photo        string
	Verified     bool
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FilteredUser is the externally visible projection of a User. It never
// carries the password hash.
type FilteredUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Photo    string `json:"photo"`
	Verified bool   `json:"verified"`
}

// Filter strips User down to its public projection.
func (u User) Filter() FilteredUser {
	return FilteredUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role.String(),
		Photo:    u.Photo,
		Verified: u.Verified,
	}
}
