package middleware

import (
	"net/http"

	"thyrocheck/internal/dto"
)

// Render writes the JSON view model for a page, draining pending flashes.
func Render(w http.ResponseWriter, r *http.Request, page string, data any) error {
	view := dto.Page{
		Page:    page,
		Flashes: ConsumeFlashes(w, r),
		Data:    data,
	}
	if view.Flashes == nil {
		view.Flashes = []dto.Flash{}
	}
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		view.Username = claims.Username
		view.Role = claims.Role
	}

	return WriteJSON(w, http.StatusOK, view)
}

// FlashRedirect flashes a message and answers with 303 See Other.
func FlashRedirect(w http.ResponseWriter, r *http.Request, category, message, to string) error {
	AddFlash(w, r, category, message)
	http.Redirect(w, r, to, http.StatusSeeOther)
	return nil
}
