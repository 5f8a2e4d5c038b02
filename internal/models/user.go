package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

type User struct {
	Sub          uuid.UUID `json:"sub" db:"sub"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// IsValidRole reports whether role is one users can register with.
func IsValidRole(role string) bool {
	return role == RoleDoctor || role == RolePatient
}
