package service

import (
	"context"
	"errors"
	"log"
	"time"

	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/dto"
	"thyrocheck/internal/models"
	"thyrocheck/internal/thyroid/classifier"
	"thyrocheck/internal/thyroid/report"
	"thyrocheck/internal/thyroid/repository"

	"github.com/google/uuid"
)

type ThyroidService interface {
	Check(ctx context.Context, doctorUserID uuid.UUID, req dto.ThyroCheckRequest) (*dto.ThyroCheckResponse, error)
	Predictions(ctx context.Context) ([]models.ThyroidPrediction, error)
	PredictionsWithPatients(ctx context.Context) ([]models.PredictionView, error)
	Report(ctx context.Context, predictionID int64) ([]byte, error)
	Digest(ctx context.Context, day time.Time) ([]models.LabelCount, error)
}

type ThyroidServiceImpl struct {
	repo      repository.PredictionRepository
	predictor classifier.Predictor
	now       func() time.Time
}

// NewThyroidService accepts a nil predictor so the rest of the application
// keeps working when the model artifact could not be loaded.
func NewThyroidService(repo repository.PredictionRepository, predictor classifier.Predictor) *ThyroidServiceImpl {
	return &ThyroidServiceImpl{repo: repo, predictor: predictor, now: time.Now}
}

// WithClock replaces the time source used to stamp predictions.
func (s *ThyroidServiceImpl) WithClock(now func() time.Time) *ThyroidServiceImpl {
	s.now = now
	return s
}

func (s *ThyroidServiceImpl) Check(ctx context.Context, doctorUserID uuid.UUID, req dto.ThyroCheckRequest) (*dto.ThyroCheckResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.predictor == nil {
		return nil, customerrors.ErrModelUnavailable
	}

	prediction, err := s.predictor.Predict(req.TSH, req.T3, req.T4)
	if err != nil {
		if errors.Is(err, classifier.ErrInvalidInput) {
			return nil, customerrors.ErrInvalidLabValue
		}
		return nil, err
	}

	saved, err := s.repo.SaveWithPatient(ctx,
		models.Patient{
			UserID:   doctorUserID,
			FullName: req.Name,
			Age:      req.Age,
			Gender:   req.Gender,
		},
		models.ThyroidPrediction{
			TSH:         req.TSH,
			T3:          req.T3,
			T4:          req.T4,
			Symptom:     req.Symptoms,
			Result:      prediction.Label,
			PredictedAt: s.now(),
		},
	)
	if err != nil {
		return nil, err
	}

	log.Printf("Saved prediction %d for patient %d: %s (%.2f)",
		saved.PredictionID, saved.PatientID, saved.Result, prediction.Probability)

	return &dto.ThyroCheckResponse{
		PredictionID: saved.PredictionID,
		PatientID:    saved.PatientID,
		Result:       saved.Result,
		Probability:  prediction.Probability,
	}, nil
}

func (s *ThyroidServiceImpl) Predictions(ctx context.Context) ([]models.ThyroidPrediction, error) {
	return s.repo.List(ctx)
}

func (s *ThyroidServiceImpl) PredictionsWithPatients(ctx context.Context) ([]models.PredictionView, error) {
	return s.repo.ListWithPatients(ctx)
}

func (s *ThyroidServiceImpl) Report(ctx context.Context, predictionID int64) ([]byte, error) {
	prediction, err := s.repo.GetByID(ctx, predictionID)
	if err != nil {
		return nil, err
	}
	return report.Render(*prediction, s.now())
}

// Digest counts the predictions made on the calendar day containing day.
func (s *ThyroidServiceImpl) Digest(ctx context.Context, day time.Time) ([]models.LabelCount, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.repo.CountByResult(ctx, from, from.AddDate(0, 0, 1))
}
