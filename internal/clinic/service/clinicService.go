package service

import (
	"context"
	"errors"

	"thyrocheck/internal/clinic/repository"
	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/dto"
	"thyrocheck/internal/models"

	"github.com/google/uuid"
)

type ClinicService interface {
	Patients(ctx context.Context) ([]models.PatientRosterEntry, error)
	Doctors(ctx context.Context) ([]models.DoctorRosterEntry, error)
	Appointments(ctx context.Context) ([]models.AppointmentView, error)
	CreateDoctorProfile(ctx context.Context, userID uuid.UUID, req dto.DoctorProfileRequest) (int64, error)
	BookAppointment(ctx context.Context, doctorUserID uuid.UUID, req dto.AppointmentRequest) (int64, error)
}

type ClinicServiceImpl struct {
	repo repository.ClinicRepository
}

func NewClinicService(repo repository.ClinicRepository) ClinicService {
	return &ClinicServiceImpl{repo: repo}
}

func (s *ClinicServiceImpl) Patients(ctx context.Context) ([]models.PatientRosterEntry, error) {
	return s.repo.ListPatients(ctx)
}

func (s *ClinicServiceImpl) Doctors(ctx context.Context) ([]models.DoctorRosterEntry, error) {
	return s.repo.ListDoctors(ctx)
}

func (s *ClinicServiceImpl) Appointments(ctx context.Context) ([]models.AppointmentView, error) {
	return s.repo.ListAppointments(ctx)
}

func (s *ClinicServiceImpl) CreateDoctorProfile(ctx context.Context, userID uuid.UUID, req dto.DoctorProfileRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	_, err := s.repo.GetDoctorByUser(ctx, userID)
	switch {
	case err == nil:
		return 0, customerrors.ErrDoctorProfileExists
	case !errors.Is(err, customerrors.ErrDoctorProfileMissing):
		return 0, err
	}

	return s.repo.SaveDoctor(ctx, models.Doctor{
		UserID:         userID,
		FullName:       req.FullName,
		Specialization: req.Specialization,
		ContactNumber:  req.ContactNumber,
	})
}

func (s *ClinicServiceImpl) BookAppointment(ctx context.Context, doctorUserID uuid.UUID, req dto.AppointmentRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	doctor, err := s.repo.GetDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return 0, err
	}

	exists, err := s.repo.PatientExists(ctx, req.PatientID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, customerrors.ErrPatientNotFound
	}

	return s.repo.SaveAppointment(ctx, models.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        doctor.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Status:          models.AppointmentScheduled,
		Notes:           req.Notes,
	})
}
