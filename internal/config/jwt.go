package config

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of the session cookie.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type Token interface {
	GenerateJWT(sub uuid.UUID, username, role string) (string, error)
	ValidateJWT(tokenString string) (*Claims, error)
}

type JWT struct {
	secret []byte
	ttl    time.Duration
}

func NewJWT(cfg *Config) *JWT {
	return &JWT{
		secret: cfg.SessionSecret,
		ttl:    cfg.SessionTTL,
	}
}

func (j *JWT) GenerateJWT(sub uuid.UUID, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   sub.String(),
			ID:        uuid.NewString(),
		},
	}

	return j.generateToken(claims)
}

func (j *JWT) ValidateJWT(tokenString string) (*Claims, error) {
	token, claims, err := j.parseJWT(tokenString)

	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, jwt.ErrTokenExpired
	}
	if err != nil || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}

	return claims, nil
}

func (j *JWT) generateToken(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (j *JWT) parseJWT(tokenString string) (*jwt.Token, *Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return token, claims, err
}
