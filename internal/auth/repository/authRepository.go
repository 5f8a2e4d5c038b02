package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

type UserRepository interface {
	CheckUserExists(ctx context.Context, username, email string) error
	SaveUser(ctx context.Context, username, password, email, role string) (uuid.UUID, error)
	GetUserByCredentials(ctx context.Context, email, role, password string) (*models.User, error)
	Healthz(ctx context.Context) error
}

type UserRepositoryImpl struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) CheckUserExists(ctx context.Context, username, email string) error {
	query := `
        SELECT
            EXISTS(SELECT 1 FROM users WHERE username = $1) AS username_exists,
            EXISTS(SELECT 1 FROM users WHERE email = $2) AS email_exists
    `
	var usernameExists, emailExists bool
	err := r.db.QueryRowContext(ctx, query, username, email).Scan(&usernameExists, &emailExists)
	if err != nil {
		return err
	}

	switch {
	case usernameExists:
		return customerrors.ErrUsernameAlreadyExists
	case emailExists:
		return customerrors.ErrEmailAlreadyExists
	default:
		return nil
	}
}

func (r *UserRepositoryImpl) SaveUser(ctx context.Context, username, password, email, role string) (uuid.UUID, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	query := "INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING sub"
	var sub uuid.UUID
	err = r.db.QueryRowContext(
		ctx,
		query,
		username,
		email,
		string(hashedPassword),
		role,
	).Scan(&sub)

	if err != nil {
		return uuid.Nil, mapUniqueViolation(err)
	}

	return sub, nil
}

func (r *UserRepositoryImpl) GetUserByCredentials(ctx context.Context, email, role, password string) (*models.User, error) {
	var user models.User
	query := `
        SELECT sub, username, email, password_hash, role, created_at
        FROM users
        WHERE email = $1 AND role = $2
    `

	err := r.db.QueryRowContext(ctx, query, email, role).Scan(
		&user.Sub,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customerrors.ErrUserNotFound
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, customerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepositoryImpl) Healthz(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		switch {
		case isSSLerror(err):
			return customerrors.ErrDbSSLHandshakeFailed
		case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
			return customerrors.ErrDbTimeout
		default:
			return customerrors.ErrDbUnreacheable
		}
	}
	return nil
}

// mapUniqueViolation covers the race where two registrations pass
// CheckUserExists for the same username or email.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	if strings.Contains(pqErr.Constraint, "email") {
		return customerrors.ErrEmailAlreadyExists
	}
	return customerrors.ErrUsernameAlreadyExists
}

func isSSLerror(err error) bool {
	return strings.Contains(err.Error(), "SSL") ||
		strings.Contains(err.Error(), "certificate") ||
		strings.Contains(err.Error(), "TLS")
}
