package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"thyrocheck/internal/dto"
)

const flashCookieName = "flash"

// AddFlash queues a message for the next rendered page, keeping any
// messages the request already carried.
func AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	flashes := append(readFlashes(r), dto.Flash{Category: category, Message: message})

	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ConsumeFlashes returns the pending messages and expires the cookie.
func ConsumeFlashes(w http.ResponseWriter, r *http.Request) []dto.Flash {
	flashes := readFlashes(r)
	if len(flashes) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return flashes
}

func readFlashes(r *http.Request) []dto.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flashes []dto.Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}
