package domain

import "time"

// User is the domain model for registered accounts, both customers and admins.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity derives the principal view of the user for token issuance.
func (u *User) Identity() Identity {
	return Identity{
		SubjectID: u.ID,
		Role:      u.Role,
		Name:      u.Name,
		Email:     u.Email,
	}
}
