package middleware

import (
	"context"
	"net/http"
	"time"

	"thyrocheck/internal/config"
	customerrors "thyrocheck/internal/customErrors"

	"github.com/google/uuid"
)

const SessionCookieName = "session"

type contextKey string

const claimsContextKey contextKey = "claims"

type Sessions struct {
	jwt    config.Token
	ttl    time.Duration
	secure bool
}

func NewSessions(jwt config.Token, cfg *config.Config) *Sessions {
	return &Sessions{jwt: jwt, ttl: cfg.SessionTTL, secure: cfg.SecureCookies}
}

// Start stores a freshly issued session token in the session cookie.
func (s *Sessions) Start(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Attach puts the claims of a valid session cookie on the request context.
// Requests without a valid session pass through untouched.
func (s *Sessions) Attach(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			return next(w, r)
		}

		claims, err := s.jwt.ValidateJWT(cookie.Value)
		if err != nil {
			s.Clear(w)
			return next(w, r)
		}

		return next(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// RequireRole only lets sessions of the given role through; everyone else
// is sent to the login page.
func (s *Sessions) RequireRole(role string, next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			return RedirectWithWarning(customerrors.ErrLoginRequired, "/login")
		}
		if claims.Role != role {
			return RedirectWithError(customerrors.ErrUnauthorized, "/login")
		}
		return next(w, r)
	}
}

func WithClaims(ctx context.Context, claims *config.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*config.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*config.Claims)
	return claims, ok && claims != nil
}

// CurrentUserID returns the users.sub of the session on ctx.
func CurrentUserID(ctx context.Context) (uuid.UUID, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, customerrors.ErrLoginRequired
	}
	return uuid.Parse(claims.Subject)
}
