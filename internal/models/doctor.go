package models

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	DoctorID       int64     `json:"doctor_id" db:"doctor_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	FullName       string    `json:"full_name" db:"full_name"`
	Specialization string    `json:"specialization" db:"specialization"`
	ContactNumber  string    `json:"contact_number" db:"contact_number"`
}

// DoctorRosterEntry is a doctor account joined with its profile.
type DoctorRosterEntry struct {
	UserID         uuid.UUID `json:"user_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	FullName       string    `json:"full_name"`
	Specialization string    `json:"specialization"`
	ContactNumber  string    `json:"contact_number"`
}
