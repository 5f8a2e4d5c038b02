package api

import (
	"net/http"

	authcontroller "thyrocheck/internal/auth/controller"
	cliniccontroller "thyrocheck/internal/clinic/controller"
	"thyrocheck/internal/middleware"
	"thyrocheck/internal/models"
	thyroidcontroller "thyrocheck/internal/thyroid/controller"
)

type Controllers struct {
	Auth    *authcontroller.AuthController
	Clinic  *cliniccontroller.ClinicController
	Thyroid *thyroidcontroller.ThyroidController
}

type router struct {
	mux      *http.ServeMux
	sessions *middleware.Sessions
}

func SetupRoutes(c Controllers, sessions *middleware.Sessions) *http.ServeMux {
	rt := &router{mux: http.NewServeMux(), sessions: sessions}

	rt.setupPublicRoutes(c)
	rt.setupAuthRoutes(c.Auth)
	rt.setupPatientRoutes(c.Clinic)
	rt.setupDoctorRoutes(c.Clinic, c.Thyroid)
	rt.setupSystemRoutes(c.Auth)

	return rt.mux
}

func (rt *router) applyMiddleware(h middleware.HandlerFunc) http.HandlerFunc {
	return middleware.ErrorHandler(
		middleware.TrustProxyMiddleware(
			middleware.LoggingMiddleware(
				rt.sessions.Attach(h),
			),
		),
	)
}

func (rt *router) handle(pattern string, h middleware.HandlerFunc) {
	rt.mux.Handle(pattern, rt.applyMiddleware(h))
}

func (rt *router) handleRole(pattern, role string, h middleware.HandlerFunc) {
	rt.handle(pattern, rt.sessions.RequireRole(role, h))
}

func (rt *router) setupPublicRoutes(c Controllers) {
	rt.handle("GET /{$}", c.Clinic.Landing)
	rt.handle("GET /about", c.Clinic.About)
}

func (rt *router) setupAuthRoutes(auth *authcontroller.AuthController) {
	rt.handle("GET /register", auth.RegisterPage)
	rt.handle("POST /register", auth.Register)
	rt.handle("GET /login", auth.LoginPage)
	rt.handle("POST /login", auth.Login)
	rt.handle("GET /role_selection", auth.RoleSelection)
	rt.handle("GET /logout", auth.Logout)

	for _, role := range []string{models.RoleDoctor, models.RolePatient} {
		rt.handle("GET /login/"+role, auth.RoleLoginPage(role))
		rt.handle("POST /login/"+role, auth.RoleLogin(role))
	}
}

func (rt *router) setupPatientRoutes(clinic *cliniccontroller.ClinicController) {
	rt.handleRole("GET /patient_dashboard", models.RolePatient, clinic.PatientDashboard)
}

func (rt *router) setupDoctorRoutes(clinic *cliniccontroller.ClinicController, thyroid *thyroidcontroller.ThyroidController) {
	rt.handleRole("GET /doctor_dashboard", models.RoleDoctor, clinic.DoctorDashboard)
	rt.handleRole("GET /patients", models.RoleDoctor, clinic.Patients)
	rt.handleRole("GET /doctors", models.RoleDoctor, clinic.Doctors)
	rt.handleRole("POST /doctors/profile", models.RoleDoctor, clinic.CreateDoctorProfile)
	rt.handleRole("GET /appointments", models.RoleDoctor, clinic.Appointments)
	rt.handleRole("POST /appointments", models.RoleDoctor, clinic.BookAppointment)

	rt.handleRole("GET /thyrocheck", models.RoleDoctor, thyroid.ThyroCheckPage)
	rt.handleRole("POST /thyrocheck", models.RoleDoctor, thyroid.ThyroCheck)
	rt.handleRole("GET /thyroid_predictions", models.RoleDoctor, thyroid.Predictions)
	rt.handleRole("GET /thyroid_predictions/{id}/report", models.RoleDoctor, thyroid.Report)
}

func (rt *router) setupSystemRoutes(auth *authcontroller.AuthController) {
	rt.handle("GET /healthz", auth.HealthCheck)
}
