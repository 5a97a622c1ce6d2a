package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role разделяет пользователей на соискателей и рекрутёров.
type Role string

const (
	RoleSeeker    Role = "seeker"
	RoleRecruiter Role = "recruiter"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleRecruiter
}

// User is a domain entity representing a system user.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
