package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/models"
)

type PredictionRepository interface {
	// SaveWithPatient stores prediction for the patient named in intake,
	// registering that patient first when no row carries the name. Both
	// writes share one transaction. The returned prediction holds the
	// patient's stored demographics and the generated ids.
	SaveWithPatient(ctx context.Context, intake models.Patient, prediction models.ThyroidPrediction) (*models.ThyroidPrediction, error)
	List(ctx context.Context) ([]models.ThyroidPrediction, error)
	ListWithPatients(ctx context.Context) ([]models.PredictionView, error)
	GetByID(ctx context.Context, id int64) (*models.ThyroidPrediction, error)
	CountByResult(ctx context.Context, from, to time.Time) ([]models.LabelCount, error)
}

type PredictionRepositoryImpl struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) PredictionRepository {
	return &PredictionRepositoryImpl{db: db}
}

func (r *PredictionRepositoryImpl) SaveWithPatient(ctx context.Context, intake models.Patient, prediction models.ThyroidPrediction) (*models.ThyroidPrediction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	patient, err := findOrCreatePatient(ctx, tx, intake)
	if err != nil {
		return nil, err
	}

	saved := prediction
	saved.PatientID = patient.PatientID
	saved.Name = patient.FullName
	saved.Age = patient.Age
	saved.Gender = patient.Gender

	query := `
        INSERT INTO thyroid_predictions
            (patient_id, name, age, gender, tsh, t3, t4, symptom, result, predicted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING prediction_id
    `
	err = tx.QueryRowContext(ctx, query,
		saved.PatientID, saved.Name, saved.Age, saved.Gender,
		saved.TSH, saved.T3, saved.T4, saved.Symptom, saved.Result, saved.PredictedAt,
	).Scan(&saved.PredictionID)
	if err != nil {
		return nil, fmt.Errorf("save prediction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit prediction: %w", err)
	}
	return &saved, nil
}

func findOrCreatePatient(ctx context.Context, tx *sql.Tx, intake models.Patient) (*models.Patient, error) {
	query := `
        SELECT patient_id, user_id, full_name, age, gender
        FROM patients
        WHERE full_name = $1
        ORDER BY patient_id
        LIMIT 1
    `
	var p models.Patient
	err := tx.QueryRowContext(ctx, query, intake.FullName).Scan(&p.PatientID, &p.UserID, &p.FullName, &p.Age, &p.Gender)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find patient: %w", err)
	}

	p = intake
	err = tx.QueryRowContext(ctx,
		"INSERT INTO patients (user_id, full_name, age, gender) VALUES ($1, $2, $3, $4) RETURNING patient_id",
		p.UserID, p.FullName, p.Age, p.Gender,
	).Scan(&p.PatientID)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return &p, nil
}

func (r *PredictionRepositoryImpl) List(ctx context.Context) ([]models.ThyroidPrediction, error) {
	query := `
        SELECT prediction_id, patient_id, name, age, gender, tsh, t3, t4, symptom, result, predicted_at
        FROM thyroid_predictions
        ORDER BY predicted_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	predictions := []models.ThyroidPrediction{}
	for rows.Next() {
		var p models.ThyroidPrediction
		if err := scanPrediction(rows, &p); err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

func (r *PredictionRepositoryImpl) ListWithPatients(ctx context.Context) ([]models.PredictionView, error) {
	query := `
        SELECT tp.prediction_id, p.full_name AS patient_name, p.age, p.gender,
            tp.tsh, tp.t3, tp.t4, tp.symptom, tp.result, tp.predicted_at
        FROM thyroid_predictions tp
        JOIN patients p ON tp.patient_id = p.patient_id
        ORDER BY tp.predicted_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	views := []models.PredictionView{}
	for rows.Next() {
		var v models.PredictionView
		err := rows.Scan(&v.PredictionID, &v.PatientName, &v.Age, &v.Gender,
			&v.TSH, &v.T3, &v.T4, &v.Symptom, &v.Result, &v.PredictedAt)
		if err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *PredictionRepositoryImpl) GetByID(ctx context.Context, id int64) (*models.ThyroidPrediction, error) {
	query := `
        SELECT prediction_id, patient_id, name, age, gender, tsh, t3, t4, symptom, result, predicted_at
        FROM thyroid_predictions
        WHERE prediction_id = $1
    `
	var p models.ThyroidPrediction
	if err := scanPrediction(r.db.QueryRowContext(ctx, query, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customerrors.ErrPredictionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PredictionRepositoryImpl) CountByResult(ctx context.Context, from, to time.Time) ([]models.LabelCount, error) {
	query := `
        SELECT result, COUNT(*)
        FROM thyroid_predictions
        WHERE predicted_at >= $1 AND predicted_at < $2
        GROUP BY result
        ORDER BY result
    `
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("count predictions: %w", err)
	}
	defer rows.Close()

	counts := []models.LabelCount{}
	for rows.Next() {
		var c models.LabelCount
		if err := rows.Scan(&c.Result, &c.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row scanner, p *models.ThyroidPrediction) error {
	err := row.Scan(&p.PredictionID, &p.PatientID, &p.Name, &p.Age, &p.Gender,
		&p.TSH, &p.T3, &p.T4, &p.Symptom, &p.Result, &p.PredictedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("scan prediction: %w", err)
	}
	return err
}
