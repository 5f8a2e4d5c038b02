package models

import "time"

const AppointmentScheduled = "scheduled"

type Appointment struct {
	AppointmentID   int64     `json:"appointment_id" db:"appointment_id"`
	PatientID       int64     `json:"patient_id" db:"patient_id"`
	DoctorID        int64     `json:"doctor_id" db:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date" db:"appointment_date"`
	Status          string    `json:"status" db:"status"`
	Notes           string    `json:"notes" db:"notes"`
}

type AppointmentView struct {
	AppointmentID   int64     `json:"appointment_id"`
	PatientName     string    `json:"patient_name"`
	DoctorName      string    `json:"doctor_name"`
	Specialization  string    `json:"specialization"`
	AppointmentDate time.Time `json:"appointment_date"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
}
