package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"thyrocheck/internal/auth/repository"
	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/models"
)

type testDependencies struct {
	repo    *repository.UserRepositoryImpl
	mock    sqlmock.Sqlmock
	cleanup func()
}

const newEmail = "new@test.com"
const databaseError = "Database error"
const dbError = "db error"

const existsQuery = `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1) AS username_exists, ` +
	`EXISTS(SELECT 1 FROM users WHERE email = $2) AS email_exists`
const insertQuery = `INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING sub`
const credentialsQuery = `SELECT sub, username, email, password_hash, role, created_at ` +
	`FROM users WHERE email = $1 AND role = $2`

func setupTest(t *testing.T) *testDependencies {
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
		sqlmock.MonitorPingsOption(true),
	)
	require.NoError(t, err, "Error mocking DB")

	repo := repository.NewUserRepository(db).(*repository.UserRepositoryImpl)

	return &testDependencies{
		repo: repo,
		mock: mock,
		cleanup: func() {
			assert.NoError(t, mock.ExpectationsWereMet(), "Expectations were not met")
			db.Close()
		},
	}
}

func mockUserRow(mock sqlmock.Sqlmock, user models.User) *sqlmock.Rows {
	return mock.NewRows([]string{
		"sub", "username", "email", "password_hash", "role", "created_at",
	}).AddRow(
		user.Sub.String(), user.Username, user.Email, user.PasswordHash, user.Role, user.CreatedAt,
	)
}

func mockExistsQuery(mock sqlmock.Sqlmock, usernameExists, emailExists bool) {
	mock.ExpectQuery(existsQuery).WillReturnRows(
		sqlmock.NewRows([]string{"username_exists", "email_exists"}).
			AddRow(usernameExists, emailExists),
	)
}

func TestCheckUserExists(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		username      string
		email         string
		mockSetup     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:     "User does not exist",
			username: "newuser",
			email:    newEmail,
			mockSetup: func(m sqlmock.Sqlmock) {
				mockExistsQuery(m, false, false)
			},
		},
		{
			name:     "Username exists",
			username: "existing",
			email:    newEmail,
			mockSetup: func(m sqlmock.Sqlmock) {
				mockExistsQuery(m, true, false)
			},
			expectedError: customerrors.ErrUsernameAlreadyExists,
		},
		{
			name:     "Email exists",
			username: "newuser",
			email:    "existing@test.com",
			mockSetup: func(m sqlmock.Sqlmock) {
				mockExistsQuery(m, false, true)
			},
			expectedError: customerrors.ErrEmailAlreadyExists,
		},
		{
			name:     "Both exist reports username first",
			username: "existing",
			email:    "existing@test.com",
			mockSetup: func(m sqlmock.Sqlmock) {
				mockExistsQuery(m, true, true)
			},
			expectedError: customerrors.ErrUsernameAlreadyExists,
		},
		{
			name:     databaseError,
			username: "user",
			email:    "email@test.com",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(existsQuery).WillReturnError(errors.New(dbError))
			},
			expectedError: errors.New(dbError),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			td := setupTest(t)
			defer td.cleanup()

			tc.mockSetup(td.mock)

			err := td.repo.CheckUserExists(context.Background(), tc.username, tc.email)

			if tc.expectedError != nil {
				assert.ErrorContains(t, err, tc.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveUser(t *testing.T) {
	t.Parallel()

	testUUID := uuid.New()
	validPassword := "validPassword123"
	invalidPassword := string(make([]byte, 73))

	testCases := []struct {
		name          string
		username      string
		password      string
		email         string
		role          string
		mockSetup     func(sqlmock.Sqlmock)
		expectedUUID  uuid.UUID
		expectedError error
	}{
		{
			name:     "Success case",
			username: "newuser",
			password: validPassword,
			email:    newEmail,
			role:     models.RoleDoctor,
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(insertQuery).
					WithArgs("newuser", newEmail, sqlmock.AnyArg(), models.RoleDoctor).
					WillReturnRows(sqlmock.NewRows([]string{"sub"}).AddRow(testUUID.String()))
			},
			expectedUUID: testUUID,
		},
		{
			name:     "Invalid password length",
			password: invalidPassword,
			mockSetup: func(m sqlmock.Sqlmock) {
				// No expectations
			},
			expectedUUID:  uuid.Nil,
			expectedError: bcrypt.ErrPasswordTooLong,
		},
		{
			name:     "Concurrent duplicate email",
			username: "newuser",
			password: validPassword,
			email:    newEmail,
			role:     models.RolePatient,
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(insertQuery).
					WithArgs("newuser", newEmail, sqlmock.AnyArg(), models.RolePatient).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
			},
			expectedUUID:  uuid.Nil,
			expectedError: customerrors.ErrEmailAlreadyExists,
		},
		{
			name:     "Concurrent duplicate username",
			username: "newuser",
			password: validPassword,
			email:    newEmail,
			role:     models.RolePatient,
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(insertQuery).
					WithArgs("newuser", newEmail, sqlmock.AnyArg(), models.RolePatient).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})
			},
			expectedUUID:  uuid.Nil,
			expectedError: customerrors.ErrUsernameAlreadyExists,
		},
		{
			name:     databaseError,
			username: "newuser",
			password: validPassword,
			email:    newEmail,
			role:     models.RoleDoctor,
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(insertQuery).
					WithArgs("newuser", newEmail, sqlmock.AnyArg(), models.RoleDoctor).
					WillReturnError(errors.New(dbError))
			},
			expectedUUID:  uuid.Nil,
			expectedError: errors.New(dbError),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			td := setupTest(t)
			defer td.cleanup()

			tc.mockSetup(td.mock)

			userUUID, err := td.repo.SaveUser(context.Background(), tc.username, tc.password, tc.email, tc.role)

			if tc.expectedError != nil {
				assert.ErrorContains(t, err, tc.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tc.expectedUUID, userUUID)
		})
	}
}

func TestGetUserByCredentials(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	correctPassword := "correctPassword123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(correctPassword), bcrypt.MinCost)
	require.NoError(t, err)

	testUser := models.User{
		Sub:          uuid.New(),
		Username:     "testuser",
		Email:        "test@test.com",
		PasswordHash: string(hashedPassword),
		Role:         models.RoleDoctor,
		CreatedAt:    now,
	}

	testCases := []struct {
		name          string
		email         string
		role          string
		password      string
		mockSetup     func(sqlmock.Sqlmock)
		expectedUser  *models.User
		expectedError error
	}{
		{
			name:     "Success case",
			email:    testUser.Email,
			role:     models.RoleDoctor,
			password: correctPassword,
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(credentialsQuery).
					WithArgs(testUser.Email, models.RoleDoctor).
					WillReturnRows(mockUserRow(m, testUser))
			},
			expectedUser: &testUser,
		},
		{
			name:     "Wrong role finds no user",
			email:    testUser.Email,
			role:     models.RolePatient,
			password: correctPassword,
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(credentialsQuery).
					WithArgs(testUser.Email, models.RolePatient).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: customerrors.ErrUserNotFound,
		},
		{
			name:     "Wrong password",
			email:    testUser.Email,
			role:     models.RoleDoctor,
			password: "wrongPassword",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(credentialsQuery).
					WithArgs(testUser.Email, models.RoleDoctor).
					WillReturnRows(mockUserRow(m, testUser))
			},
			expectedError: customerrors.ErrInvalidCredentials,
		},
		{
			name:     databaseError,
			email:    testUser.Email,
			role:     models.RoleDoctor,
			password: correctPassword,
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(credentialsQuery).
					WithArgs(testUser.Email, models.RoleDoctor).
					WillReturnError(errors.New(dbError))
			},
			expectedError: errors.New(dbError),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			td := setupTest(t)
			defer td.cleanup()

			tc.mockSetup(td.mock)

			user, err := td.repo.GetUserByCredentials(context.Background(), tc.email, tc.role, tc.password)

			if tc.expectedError != nil {
				assert.ErrorContains(t, err, tc.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tc.expectedUser, user)
		})
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		mockSetup     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "Healthy database",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectPing()
			},
		},
		{
			name: "SSL error",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectPing().WillReturnError(errors.New("SSL connection failed"))
			},
			expectedError: customerrors.ErrDbSSLHandshakeFailed,
		},
		{
			name: "Timeout error",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectPing().WillReturnError(context.DeadlineExceeded)
			},
			expectedError: customerrors.ErrDbTimeout,
		},
		{
			name: "Generic error",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectPing().WillReturnError(errors.New("connection refused"))
			},
			expectedError: customerrors.ErrDbUnreacheable,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			td := setupTest(t)
			defer td.cleanup()

			tc.mockSetup(td.mock)

			err := td.repo.Healthz(context.Background())

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
