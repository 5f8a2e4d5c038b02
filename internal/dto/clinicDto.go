package dto

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	customerrors "thyrocheck/internal/customErrors"
)

type DoctorProfileRequest struct {
	FullName       string `validate:"required,max=128"`
	Specialization string `validate:"required,max=128"`
	ContactNumber  string `validate:"required,max=32"`
}

func NewDoctorProfileRequest(form url.Values) DoctorProfileRequest {
	return DoctorProfileRequest{
		FullName:       strings.TrimSpace(form.Get("full_name")),
		Specialization: strings.TrimSpace(form.Get("specialization")),
		ContactNumber:  strings.TrimSpace(form.Get("contact_number")),
	}
}

func (d *DoctorProfileRequest) Validate() error {
	return validateStruct(d)
}

// appointmentLayouts are tried in order; the first is what an HTML
// datetime-local input submits.
var appointmentLayouts = []string{"2006-01-02T15:04", time.RFC3339}

type AppointmentRequest struct {
	PatientID       int64 `validate:"required,gt=0"`
	AppointmentDate time.Time
	Notes           string `validate:"max=2000"`
}

func NewAppointmentRequest(form url.Values) (AppointmentRequest, error) {
	patientID, err := strconv.ParseInt(strings.TrimSpace(form.Get("patient_id")), 10, 64)
	if err != nil {
		return AppointmentRequest{}, customerrors.BadRequest("Please select a patient.")
	}

	date, err := parseAppointmentDate(strings.TrimSpace(form.Get("appointment_date")))
	if err != nil {
		return AppointmentRequest{}, err
	}

	return AppointmentRequest{
		PatientID:       patientID,
		AppointmentDate: date,
		Notes:           strings.TrimSpace(form.Get("notes")),
	}, nil
}

func (a *AppointmentRequest) Validate() error {
	return validateStruct(a)
}

func parseAppointmentDate(value string) (time.Time, error) {
	for _, layout := range appointmentLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, customerrors.BadRequest("Please provide a valid appointment date.")
}
