package models

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	PatientID int64     `json:"patient_id" db:"patient_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Age       int       `json:"age" db:"age"`
	Gender    string    `json:"gender" db:"gender"`
}

// PatientRosterEntry is a patient account joined with its profile.
type PatientRosterEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	FullName  string    `json:"full_name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
}
