package controller

import (
	"net/http"

	"thyrocheck/internal/clinic/service"
	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/dto"
	"thyrocheck/internal/middleware"
)

type ClinicController struct {
	clinicService service.ClinicService
}

func NewClinicController(clinicService service.ClinicService) *ClinicController {
	return &ClinicController{clinicService: clinicService}
}

func (c *ClinicController) Landing(w http.ResponseWriter, r *http.Request) error {
	return middleware.Render(w, r, "landing", nil)
}

func (c *ClinicController) About(w http.ResponseWriter, r *http.Request) error {
	return middleware.Render(w, r, "about", nil)
}

func (c *ClinicController) PatientDashboard(w http.ResponseWriter, r *http.Request) error {
	return middleware.Render(w, r, "patient_dashboard", nil)
}

func (c *ClinicController) DoctorDashboard(w http.ResponseWriter, r *http.Request) error {
	return middleware.Render(w, r, "doctor_dashboard", nil)
}

func (c *ClinicController) Patients(w http.ResponseWriter, r *http.Request) error {
	patients, err := c.clinicService.Patients(r.Context())
	if err != nil {
		return err
	}
	return middleware.Render(w, r, "patients", patients)
}

func (c *ClinicController) Doctors(w http.ResponseWriter, r *http.Request) error {
	doctors, err := c.clinicService.Doctors(r.Context())
	if err != nil {
		return err
	}
	return middleware.Render(w, r, "doctors", doctors)
}

func (c *ClinicController) Appointments(w http.ResponseWriter, r *http.Request) error {
	appointments, err := c.clinicService.Appointments(r.Context())
	if err != nil {
		return err
	}
	return middleware.Render(w, r, "appointments", appointments)
}

func (c *ClinicController) CreateDoctorProfile(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return middleware.RedirectWithError(customerrors.ErrBadRequest, "/doctors")
	}

	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		return middleware.RedirectWithWarning(customerrors.ErrLoginRequired, "/login")
	}

	if _, err := c.clinicService.CreateDoctorProfile(r.Context(), userID, dto.NewDoctorProfileRequest(r.PostForm)); err != nil {
		return middleware.RedirectWithError(err, "/doctors")
	}

	return middleware.FlashRedirect(w, r, dto.FlashSuccess, "Doctor profile saved.", "/doctors")
}

func (c *ClinicController) BookAppointment(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return middleware.RedirectWithError(customerrors.ErrBadRequest, "/appointments")
	}

	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		return middleware.RedirectWithWarning(customerrors.ErrLoginRequired, "/login")
	}

	req, err := dto.NewAppointmentRequest(r.PostForm)
	if err != nil {
		return middleware.RedirectWithError(err, "/appointments")
	}

	if _, err := c.clinicService.BookAppointment(r.Context(), userID, req); err != nil {
		return middleware.RedirectWithError(err, "/appointments")
	}

	return middleware.FlashRedirect(w, r, dto.FlashSuccess, "Appointment booked.", "/appointments")
}
