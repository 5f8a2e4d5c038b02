package models

import "time"

const (
	LabelBenign    = "Benign"
	LabelMalignant = "Malignant"
)

type ThyroidPrediction struct {
	PredictionID int64     `json:"prediction_id" db:"prediction_id"`
	PatientID    int64     `json:"patient_id" db:"patient_id"`
	Name         string    `json:"name" db:"name"`
	Age          int       `json:"age" db:"age"`
	Gender       string    `json:"gender" db:"gender"`
	TSH          float64   `json:"tsh" db:"tsh"`
	T3           float64   `json:"t3" db:"t3"`
	T4           float64   `json:"t4" db:"t4"`
	Symptom      string    `json:"symptom" db:"symptom"`
	Result       string    `json:"result" db:"result"`
	PredictedAt  time.Time `json:"predicted_at" db:"predicted_at"`
}

// PredictionView is a prediction joined with the current patient row.
type PredictionView struct {
	PredictionID int64     `json:"prediction_id"`
	PatientName  string    `json:"patient_name"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	TSH          float64   `json:"tsh"`
	T3           float64   `json:"t3"`
	T4           float64   `json:"t4"`
	Symptom      string    `json:"symptom"`
	Result       string    `json:"result"`
	PredictedAt  time.Time `json:"predicted_at"`
}

type LabelCount struct {
	Result string `json:"result"`
	Count  int64  `json:"count"`
}
