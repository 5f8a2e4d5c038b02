package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ClinicRepository interface {
	ListPatients(ctx context.Context) ([]models.PatientRosterEntry, error)
	ListDoctors(ctx context.Context) ([]models.DoctorRosterEntry, error)
	ListAppointments(ctx context.Context) ([]models.AppointmentView, error)
	GetDoctorByUser(ctx context.Context, userID uuid.UUID) (*models.Doctor, error)
	SaveDoctor(ctx context.Context, doctor models.Doctor) (int64, error)
	PatientExists(ctx context.Context, patientID int64) (bool, error)
	SaveAppointment(ctx context.Context, appointment models.Appointment) (int64, error)
}

type ClinicRepositoryImpl struct {
	db *sql.DB
}

func NewClinicRepository(db *sql.DB) ClinicRepository {
	return &ClinicRepositoryImpl{db: db}
}

func (r *ClinicRepositoryImpl) ListPatients(ctx context.Context) ([]models.PatientRosterEntry, error) {
	query := `
        SELECT u.sub, u.username, u.email, u.created_at, p.full_name, p.age, p.gender
        FROM users u
        JOIN patients p ON u.sub = p.user_id
        WHERE u.role = 'patient'
        ORDER BY u.created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	patients := []models.PatientRosterEntry{}
	for rows.Next() {
		var p models.PatientRosterEntry
		if err := rows.Scan(&p.UserID, &p.Username, &p.Email, &p.CreatedAt, &p.FullName, &p.Age, &p.Gender); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *ClinicRepositoryImpl) ListDoctors(ctx context.Context) ([]models.DoctorRosterEntry, error) {
	query := `
        SELECT u.sub, u.username, u.email, u.created_at, d.full_name, d.specialization, d.contact_number
        FROM users u
        JOIN doctors d ON u.sub = d.user_id
        WHERE u.role = 'doctor'
        ORDER BY u.created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	doctors := []models.DoctorRosterEntry{}
	for rows.Next() {
		var d models.DoctorRosterEntry
		if err := rows.Scan(&d.UserID, &d.Username, &d.Email, &d.CreatedAt, &d.FullName, &d.Specialization, &d.ContactNumber); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

func (r *ClinicRepositoryImpl) ListAppointments(ctx context.Context) ([]models.AppointmentView, error) {
	query := `
        SELECT a.appointment_id, p.full_name AS patient_name, d.full_name AS doctor_name,
            d.specialization, a.appointment_date, a.status, a.notes
        FROM appointments a
        JOIN patients p ON a.patient_id = p.patient_id
        JOIN doctors d ON a.doctor_id = d.doctor_id
        ORDER BY a.appointment_date DESC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appointments := []models.AppointmentView{}
	for rows.Next() {
		var a models.AppointmentView
		if err := rows.Scan(&a.AppointmentID, &a.PatientName, &a.DoctorName, &a.Specialization, &a.AppointmentDate, &a.Status, &a.Notes); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (r *ClinicRepositoryImpl) GetDoctorByUser(ctx context.Context, userID uuid.UUID) (*models.Doctor, error) {
	query := "SELECT doctor_id, user_id, full_name, specialization, contact_number FROM doctors WHERE user_id = $1"

	var d models.Doctor
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&d.DoctorID, &d.UserID, &d.FullName, &d.Specialization, &d.ContactNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customerrors.ErrDoctorProfileMissing
		}
		return nil, err
	}
	return &d, nil
}

func (r *ClinicRepositoryImpl) SaveDoctor(ctx context.Context, doctor models.Doctor) (int64, error) {
	query := "INSERT INTO doctors (user_id, full_name, specialization, contact_number) VALUES ($1, $2, $3, $4) RETURNING doctor_id"

	var id int64
	err := r.db.QueryRowContext(ctx, query, doctor.UserID, doctor.FullName, doctor.Specialization, doctor.ContactNumber).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, customerrors.ErrDoctorProfileExists
		}
		return 0, err
	}
	return id, nil
}

func (r *ClinicRepositoryImpl) PatientExists(ctx context.Context, patientID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM patients WHERE patient_id = $1)", patientID).Scan(&exists)
	return exists, err
}

func (r *ClinicRepositoryImpl) SaveAppointment(ctx context.Context, a models.Appointment) (int64, error) {
	query := `
        INSERT INTO appointments (patient_id, doctor_id, appointment_date, status, notes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING appointment_id
    `
	var id int64
	err := r.db.QueryRowContext(ctx, query, a.PatientID, a.DoctorID, a.AppointmentDate, a.Status, a.Notes).Scan(&id)
	return id, err
}
