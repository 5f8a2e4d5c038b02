package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"thyrocheck/internal/config"
	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/dto"
	"thyrocheck/internal/middleware"
	"thyrocheck/internal/models"
	"thyrocheck/internal/thyroid/controller"
)

type MockThyroidService struct {
	mock.Mock
}

func (m *MockThyroidService) Check(ctx context.Context, doctorUserID uuid.UUID, req dto.ThyroCheckRequest) (*dto.ThyroCheckResponse, error) {
	args := m.Called(doctorUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ThyroCheckResponse), args.Error(1)
}

func (m *MockThyroidService) Predictions(ctx context.Context) ([]models.ThyroidPrediction, error) {
	args := m.Called()
	return args.Get(0).([]models.ThyroidPrediction), args.Error(1)
}

func (m *MockThyroidService) PredictionsWithPatients(ctx context.Context) ([]models.PredictionView, error) {
	args := m.Called()
	return args.Get(0).([]models.PredictionView), args.Error(1)
}

func (m *MockThyroidService) Report(ctx context.Context, predictionID int64) ([]byte, error) {
	args := m.Called(predictionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockThyroidService) Digest(ctx context.Context, day time.Time) ([]models.LabelCount, error) {
	args := m.Called(day)
	return args.Get(0).([]models.LabelCount), args.Error(1)
}

var doctorID = uuid.New()

func asDoctor(r *http.Request) *http.Request {
	claims := &config.Claims{Username: "drhouse", Role: models.RoleDoctor}
	claims.Subject = doctorID.String()
	return r.WithContext(middleware.WithClaims(r.Context(), claims))
}

func postForm(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/thyrocheck", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return asDoctor(req)
}

func flashes(rec *httptest.ResponseRecorder) []dto.Flash {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return middleware.ConsumeFlashes(httptest.NewRecorder(), req)
}

func intakeForm() url.Values {
	return url.Values{
		"name":     {"Jane Doe"},
		"age":      {"42"},
		"gender":   {"Female"},
		"tsh":      {"6.1"},
		"t3":       {"1.1"},
		"t4":       {"9.5"},
		"symptoms": {"Fatigue", "Weight gain"},
	}
}

func TestThyroCheck(t *testing.T) {
	t.Parallel()

	expectedReq := dto.ThyroCheckRequest{
		Name: "Jane Doe", Age: 42, Gender: "Female",
		TSH: 6.1, T3: 1.1, T4: 9.5, Symptoms: "Fatigue, Weight gain",
	}

	testCases := []struct {
		name          string
		form          func() url.Values
		mockSetup     func(*MockThyroidService)
		expectedFlash dto.Flash
	}{
		{
			name: "Prediction saved",
			form: intakeForm,
			mockSetup: func(m *MockThyroidService) {
				m.On("Check", doctorID, expectedReq).Return(&dto.ThyroCheckResponse{
					PredictionID: 30, PatientID: 7, Result: models.LabelMalignant, Probability: 0.8,
				}, nil)
			},
			expectedFlash: dto.Flash{Category: dto.FlashSuccess, Message: "Prediction saved successfully! Result: Malignant"},
		},
		{
			name: "No symptoms checked",
			form: func() url.Values {
				f := intakeForm()
				f.Del("symptoms")
				return f
			},
			mockSetup: func(m *MockThyroidService) {
				req := expectedReq
				req.Symptoms = "None"
				m.On("Check", doctorID, req).Return(&dto.ThyroCheckResponse{Result: models.LabelBenign}, nil)
			},
			expectedFlash: dto.Flash{Category: dto.FlashSuccess, Message: "Prediction saved successfully! Result: Benign"},
		},
		{
			name: "Unparseable TSH",
			form: func() url.Values {
				f := intakeForm()
				f.Set("tsh", "high")
				return f
			},
			mockSetup:     func(m *MockThyroidService) {},
			expectedFlash: dto.Flash{Category: dto.FlashDanger, Message: "Error: Please provide a valid TSH value."},
		},
		{
			name: "Model unavailable",
			form: intakeForm,
			mockSetup: func(m *MockThyroidService) {
				m.On("Check", doctorID, expectedReq).Return(nil, customerrors.ErrModelUnavailable)
			},
			expectedFlash: dto.Flash{Category: dto.FlashDanger, Message: "Error: prediction model unavailable"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockThyroidService)
			tc.mockSetup(svc)

			rec := httptest.NewRecorder()
			middleware.ErrorHandler(controller.NewThyroidController(svc).ThyroCheck)(rec, postForm(tc.form()))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/thyrocheck", rec.Header().Get("Location"))
			assert.Equal(t, []dto.Flash{tc.expectedFlash}, flashes(rec))
			svc.AssertExpectations(t)
		})
	}
}

func TestThyroCheckPageListsPredictions(t *testing.T) {
	t.Parallel()

	svc := new(MockThyroidService)
	svc.On("Predictions").Return([]models.ThyroidPrediction{{PredictionID: 2, Name: "Jane Doe", Result: models.LabelBenign}}, nil)

	rec := httptest.NewRecorder()
	middleware.ErrorHandler(controller.NewThyroidController(svc).ThyroCheckPage)(rec, asDoctor(httptest.NewRequest(http.MethodGet, "/thyrocheck", nil)))

	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Page string                     `json:"page"`
		Data []models.ThyroidPrediction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "thyroid_predictions", page.Page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Jane Doe", page.Data[0].Name)
}

func TestReport(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		id             string
		mockSetup      func(*MockThyroidService)
		expectedStatus int
		expectedType   string
	}{
		{
			name: "PDF",
			id:   "5",
			mockSetup: func(m *MockThyroidService) {
				m.On("Report", int64(5)).Return([]byte("%PDF-1.3 test"), nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   "application/pdf",
		},
		{
			name: "Unknown prediction",
			id:   "6",
			mockSetup: func(m *MockThyroidService) {
				m.On("Report", int64(6)).Return(nil, customerrors.ErrPredictionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedType:   "application/json",
		},
		{
			name:           "Malformed id",
			id:             "abc",
			mockSetup:      func(m *MockThyroidService) {},
			expectedStatus: http.StatusNotFound,
			expectedType:   "application/json",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockThyroidService)
			tc.mockSetup(svc)

			mux := http.NewServeMux()
			mux.Handle("GET /thyroid_predictions/{id}/report", middleware.ErrorHandler(controller.NewThyroidController(svc).Report))

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, asDoctor(httptest.NewRequest(http.MethodGet, "/thyroid_predictions/"+tc.id+"/report", nil)))

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedType, rec.Header().Get("Content-Type"))
			svc.AssertExpectations(t)
		})
	}
}
