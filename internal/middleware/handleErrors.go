package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/dto"
)

type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// redirectError sends the user back to a form with the error as a flash.
type redirectError struct {
	err      error
	to       string
	category string
}

func (e *redirectError) Error() string { return e.err.Error() }

func (e *redirectError) Unwrap() error { return e.err }

// RedirectWithError makes ErrorHandler flash err as danger and redirect to.
func RedirectWithError(err error, to string) error {
	return &redirectError{err: err, to: to, category: dto.FlashDanger}
}

// RedirectWithWarning is RedirectWithError with a warning flash.
func RedirectWithWarning(err error, to string) error {
	return &redirectError{err: err, to: to, category: dto.FlashWarning}
}

func ErrorHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			handleHttpError(w, r, err)
		}
	}
}

func handleHttpError(w http.ResponseWriter, r *http.Request, err error) {
	var redirect *redirectError
	if errors.As(err, &redirect) {
		if customerrors.GetStatus(err) >= 500 {
			log.Printf("Error on %s %s: %v", r.Method, r.URL.Path, err)
		}
		AddFlash(w, r, redirect.category, customerrors.GetMessage(redirect.err))
		http.Redirect(w, r, redirect.to, http.StatusSeeOther)
		return
	}

	status := customerrors.GetStatus(err)
	if status >= 500 {
		log.Printf("Error on %s %s: %v", r.Method, r.URL.Path, err)
	}

	res := &customerrors.Error{
		Code:    status,
		Message: customerrors.GetMessage(err),
	}
	WriteJSON(w, status, res)
}

func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
