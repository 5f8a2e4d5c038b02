package service

import (
	"context"
	"errors"
	"log"

	"thyrocheck/internal/auth/limiter"
	"thyrocheck/internal/auth/repository"
	"thyrocheck/internal/config"
	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/dto"
	"thyrocheck/internal/models"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (uuid.UUID, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	HealthCheck(ctx context.Context) error
}

type AuthServiceImpl struct {
	repo    repository.UserRepository
	jwt     config.Token
	limiter limiter.Limiter
}

func NewAuthService(repo repository.UserRepository, jwt config.Token, limiter limiter.Limiter) AuthService {
	return &AuthServiceImpl{repo: repo, jwt: jwt, limiter: limiter}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (uuid.UUID, error) {
	if req.Password != req.ConfirmPassword {
		return uuid.Nil, customerrors.ErrPasswordMismatch
	}

	if !models.IsValidRole(req.Role) {
		return uuid.Nil, customerrors.ErrInvalidRole
	}

	if err := req.Validate(); err != nil {
		return uuid.Nil, err
	}

	if err := s.repo.CheckUserExists(ctx, req.Username, req.Email); err != nil {
		return uuid.Nil, err
	}

	sub, err := s.repo.SaveUser(ctx, req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		return uuid.Nil, err
	}

	log.Printf("Registered %s %s", req.Role, sub)
	return sub, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, customerrors.ErrInvalidCredentials
	}

	key := req.Role + ":" + req.Email
	blocked, err := s.limiter.Blocked(ctx, key)
	if err != nil {
		log.Printf("Login limiter unavailable: %v", err)
	}
	if blocked {
		return nil, customerrors.ErrTooManyAttempts
	}

	// Counted before the password check, so parallel guesses for one key
	// never exceed the limit.
	attempts, err := s.limiter.Fail(ctx, key)
	if err != nil {
		log.Printf("Could not record login attempt: %v", err)
	} else if attempts > s.limiter.Limit() {
		return nil, customerrors.ErrTooManyAttempts
	}

	user, err := s.repo.GetUserByCredentials(ctx, req.Email, req.Role, req.Password)
	if err != nil {
		if errors.Is(err, customerrors.ErrUserNotFound) || errors.Is(err, customerrors.ErrInvalidCredentials) {
			log.Printf("Failed %s login (attempt %d)", req.Role, attempts)
			return nil, customerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		log.Printf("Could not reset login attempts: %v", err)
	}

	token, err := s.jwt.GenerateJWT(user.Sub, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (s *AuthServiceImpl) HealthCheck(ctx context.Context) error {
	return s.repo.Healthz(ctx)
}
