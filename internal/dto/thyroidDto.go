package dto

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	customerrors "thyrocheck/internal/customErrors"
)

const noSymptoms = "None"

type ThyroCheckRequest struct {
	Name     string  `validate:"required,max=128"`
	Age      int     `validate:"gte=0,lte=150"`
	Gender   string  `validate:"required,max=32"`
	TSH      float64 `validate:"gte=0"`
	T3       float64 `validate:"gte=0"`
	T4       float64 `validate:"gte=0"`
	Symptoms string
}

func NewThyroCheckRequest(form url.Values) (ThyroCheckRequest, error) {
	age, err := strconv.Atoi(strings.TrimSpace(form.Get("age")))
	if err != nil {
		return ThyroCheckRequest{}, customerrors.BadRequest("Please provide a valid age.")
	}

	var labs [3]float64
	for i, key := range []string{"tsh", "t3", "t4"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(form.Get(key)), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return ThyroCheckRequest{}, customerrors.BadRequest("Please provide a valid " + strings.ToUpper(key) + " value.")
		}
		labs[i] = v
	}

	return ThyroCheckRequest{
		Name:     strings.TrimSpace(form.Get("name")),
		Age:      age,
		Gender:   strings.TrimSpace(form.Get("gender")),
		TSH:      labs[0],
		T3:       labs[1],
		T4:       labs[2],
		Symptoms: JoinSymptoms(form["symptoms"]),
	}, nil
}

func (t *ThyroCheckRequest) Validate() error {
	if t.TSH < 0 || t.T3 < 0 || t.T4 < 0 {
		return customerrors.ErrInvalidLabValue
	}
	return validateStruct(t)
}

// JoinSymptoms collapses the checked symptom boxes into one column value.
func JoinSymptoms(symptoms []string) string {
	kept := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return noSymptoms
	}
	return strings.Join(kept, ", ")
}

type ThyroCheckResponse struct {
	PredictionID int64
	PatientID    int64
	Result       string
	Probability  float64
}
