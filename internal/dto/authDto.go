package dto

import (
	"net/url"
	"strings"
)

type RegisterRequest struct {
	Username        string `validate:"required,max=64"`
	Email           string `validate:"required,email,max=254"`
	Password        string `validate:"required,min=8,max=72"`
	ConfirmPassword string
	Role            string `validate:"required,oneof=doctor patient"`
}

func NewRegisterRequest(form url.Values) RegisterRequest {
	return RegisterRequest{
		Username:        strings.TrimSpace(form.Get("username")),
		Email:           strings.ToLower(strings.TrimSpace(form.Get("email"))),
		Password:        form.Get("password"),
		ConfirmPassword: form.Get("confirm_password"),
		Role:            strings.ToLower(strings.TrimSpace(form.Get("role"))),
	}
}

func (r *RegisterRequest) Validate() error {
	return validateStruct(r)
}

type LoginRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Role     string `validate:"required,oneof=doctor patient"`
}

func NewLoginRequest(form url.Values, role string) LoginRequest {
	return LoginRequest{
		Email:    strings.ToLower(strings.TrimSpace(form.Get("email"))),
		Password: form.Get("password"),
		Role:     role,
	}
}

func (l *LoginRequest) Validate() error {
	return validateStruct(l)
}

type LoginResponse struct {
	Token    string
	Username string
	Role     string
}
