package controller

import (
	"context"
	"net/http"
	"time"

	"thyrocheck/internal/auth/service"
	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/dto"
	"thyrocheck/internal/middleware"
	"thyrocheck/internal/models"
)

var dashboards = map[string]string{
	models.RoleDoctor:  "/doctor_dashboard",
	models.RolePatient: "/patient_dashboard",
}

type AuthController struct {
	authService service.AuthService
	sessions    *middleware.Sessions
	sslMode     string
}

func NewAuthController(authService service.AuthService, sessions *middleware.Sessions, sslMode string) *AuthController {
	return &AuthController{authService: authService, sessions: sessions, sslMode: sslMode}
}

func (c *AuthController) RegisterPage(w http.ResponseWriter, r *http.Request) error {
	return middleware.Render(w, r, "register", nil)
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return middleware.RedirectWithError(customerrors.ErrBadRequest, "/register")
	}

	req := dto.NewRegisterRequest(r.PostForm)
	if _, err := c.authService.Register(r.Context(), req); err != nil {
		return middleware.RedirectWithError(err, "/register")
	}

	return middleware.FlashRedirect(w, r, dto.FlashSuccess, "Registration successful! Please log in.", "/login")
}

func (c *AuthController) LoginPage(w http.ResponseWriter, r *http.Request) error {
	return middleware.Render(w, r, "login", nil)
}

// Login only forwards to the role picker; credentials are posted to the
// role specific endpoints.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, "/role_selection", http.StatusSeeOther)
	return nil
}

func (c *AuthController) RoleSelection(w http.ResponseWriter, r *http.Request) error {
	return middleware.Render(w, r, "role_selection", nil)
}

func (c *AuthController) RoleLoginPage(role string) middleware.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		return middleware.Render(w, r, role+"_login", map[string]string{"role": role})
	}
}

func (c *AuthController) RoleLogin(role string) middleware.HandlerFunc {
	loginPath := "/login/" + role

	return func(w http.ResponseWriter, r *http.Request) error {
		if err := r.ParseForm(); err != nil {
			return middleware.RedirectWithError(customerrors.ErrBadRequest, loginPath)
		}

		res, err := c.authService.Login(r.Context(), dto.NewLoginRequest(r.PostForm, role))
		if err != nil {
			return middleware.RedirectWithError(err, loginPath)
		}

		c.sessions.Start(w, res.Token)
		return middleware.FlashRedirect(w, r, dto.FlashSuccess, "Welcome, "+res.Username+"!", dashboards[res.Role])
	}
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) error {
	c.sessions.Clear(w)
	return middleware.FlashRedirect(w, r, dto.FlashSuccess, "You have been logged out.", "/login")
}

func (c *AuthController) HealthCheck(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := c.authService.HealthCheck(ctx); err != nil {
		return err
	}

	return middleware.WriteJSON(w, http.StatusOK, dto.HealthResponse{
		Status:   "OK",
		Database: "Connected",
		SslMode:  c.sslMode,
	})
}
