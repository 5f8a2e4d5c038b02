package customerrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/codes"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// BadRequest builds a 400 error carrying a user-facing message.
func BadRequest(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

var (
	ErrUsernameAlreadyExists = &Error{Code: 409, Message: "Username already exists."}
	ErrEmailAlreadyExists    = &Error{Code: 409, Message: "Email already exists."}
	ErrPasswordMismatch      = &Error{Code: 400, Message: "Passwords do not match."}
	ErrInvalidRole           = &Error{Code: 400, Message: "Please select a valid role."}
	ErrInvalidCredentials    = &Error{Code: 401, Message: "Invalid email or password."}
	ErrTooManyAttempts       = &Error{Code: 429, Message: "Too many failed login attempts. Try again later."}
	ErrLoginRequired         = &Error{Code: 401, Message: "Please log in to continue."}
	ErrUnauthorized          = &Error{Code: 403, Message: "Unauthorized access."}
	ErrUserNotFound          = &Error{Code: 404, Message: "user not found"}
	ErrPatientNotFound       = &Error{Code: 404, Message: "patient not found"}
	ErrPredictionNotFound    = &Error{Code: 404, Message: "prediction not found"}
	ErrDoctorProfileMissing  = &Error{Code: 409, Message: "Complete your doctor profile first."}
	ErrDoctorProfileExists   = &Error{Code: 409, Message: "Doctor profile already exists."}
	ErrInvalidLabValue       = &Error{Code: 400, Message: "Lab values must be non-negative numbers."}
	ErrModelUnavailable      = &Error{Code: 503, Message: "prediction model unavailable"}
	ErrBadRequest            = &Error{Code: 400, Message: "bad request"}
	ErrInternalServer        = &Error{Code: 500, Message: "internal server error"}
	ErrDbUnreacheable        = &Error{Code: 503, Message: "database unreachable"}
	ErrDbSSLHandshakeFailed  = &Error{Code: 502, Message: "database SSL handshake failed"}
	ErrDbTimeout             = &Error{Code: 504, Message: "database timeout"}
)

func GetStatus(err error) int {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	switch {
	case errors.Is(err, jwt.ErrSignatureInvalid), errors.Is(err, jwt.ErrTokenExpired):
		return 401

	default:
		return 500
	}
}

func GetMessage(err error) string {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}
	return err.Error()
}

// GRPCCode maps an error onto the closest gRPC status code.
func GRPCCode(err error) codes.Code {
	switch GetStatus(err) {
	case 400:
		return codes.InvalidArgument
	case 401:
		return codes.Unauthenticated
	case 403:
		return codes.PermissionDenied
	case 404:
		return codes.NotFound
	case 409:
		return codes.AlreadyExists
	case 429:
		return codes.ResourceExhausted
	case 502, 503:
		return codes.Unavailable
	case 504:
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}
