package classifier_test

import (
	"math"
	"testing"

	"thyrocheck/internal/models"
	"thyrocheck/internal/thyroid/classifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestForest(t *testing.T) *classifier.Forest {
	t.Helper()
	forest, err := classifier.Load("testdata/model.json")
	require.NoError(t, err, "Error loading test model")
	return forest
}

func TestPredict(t *testing.T) {
	t.Parallel()

	forest := loadTestForest(t)

	testCases := []struct {
		name          string
		labs          [3]float64
		expectedLabel string
		expectedProba float64
	}{
		{
			name:          "Both trees vote benign",
			labs:          [3]float64{2.0, 1.2, 15.0},
			expectedLabel: models.LabelBenign,
			expectedProba: 0.85,
		},
		{
			name:          "Both trees vote malignant",
			labs:          [3]float64{6.0, 1.2, 8.0},
			expectedLabel: models.LabelMalignant,
			expectedProba: 0.8,
		},
		{
			name:          "Tie goes to the first class",
			labs:          [3]float64{6.0, 1.2, 15.0},
			expectedLabel: models.LabelBenign,
			expectedProba: 0.5,
		},
		{
			name:          "Threshold value goes left",
			labs:          [3]float64{4.5, 0, 12.0},
			expectedLabel: models.LabelBenign,
			expectedProba: 0.55,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			prediction, err := forest.Predict(tc.labs[0], tc.labs[1], tc.labs[2])

			require.NoError(t, err)
			assert.Equal(t, tc.expectedLabel, prediction.Label)
			assert.InDelta(t, tc.expectedProba, prediction.Probability, 1e-9)
		})
	}
}

func TestPredictRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	forest := loadTestForest(t)

	for _, values := range [][3]float64{
		{-1, 1, 1},
		{1, math.NaN(), 1},
		{1, 1, math.Inf(1)},
	} {
		_, err := forest.Predict(values[0], values[1], values[2])
		assert.ErrorIs(t, err, classifier.ErrInvalidInput)
	}
}

func TestParseStringClasses(t *testing.T) {
	t.Parallel()

	raw := `{
		"classes": ["No Cancer", "Cancer"],
		"features": ["TSH", "T3", "T4"],
		"trees": [{"nodes": [{"feature": -2, "left": -1, "right": -1, "value": [1, 3]}]}]
	}`

	forest, err := classifier.Parse([]byte(raw))
	require.NoError(t, err)

	prediction, err := forest.Predict(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Cancer", prediction.Label)
	assert.InDelta(t, 0.75, prediction.Probability, 1e-9)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		raw           string
		expectedError string
	}{
		{
			name:          "Invalid JSON",
			raw:           `{`,
			expectedError: "decode model",
		},
		{
			name:          "Wrong feature count",
			raw:           `{"classes":[0,1],"features":["tsh","t3"],"trees":[]}`,
			expectedError: "features",
		},
		{
			name:          "Wrong feature order",
			raw:           `{"classes":[0,1],"features":["t3","tsh","t4"],"trees":[]}`,
			expectedError: "feature 0",
		},
		{
			name:          "Single class",
			raw:           `{"classes":[1],"features":["tsh","t3","t4"],"trees":[]}`,
			expectedError: "at least two classes",
		},
		{
			name:          "No trees",
			raw:           `{"classes":[0,1],"features":["tsh","t3","t4"],"trees":[]}`,
			expectedError: "no trees",
		},
		{
			name: "Leaf with wrong arity",
			raw: `{"classes":[0,1],"features":["tsh","t3","t4"],
				"trees":[{"nodes":[{"left":-1,"right":-1,"value":[1]}]}]}`,
			expectedError: "leaf 0",
		},
		{
			name: "Child pointing backwards",
			raw: `{"classes":[0,1],"features":["tsh","t3","t4"],
				"trees":[{"nodes":[{"feature":0,"threshold":1,"left":0,"right":1},{"left":-1,"right":-1,"value":[1,1]}]}]}`,
			expectedError: "out of range children",
		},
		{
			name: "Unknown feature",
			raw: `{"classes":[0,1],"features":["tsh","t3","t4"],
				"trees":[{"nodes":[{"feature":3,"threshold":1,"left":1,"right":2},{"left":-1,"right":-1,"value":[1,1]},{"left":-1,"right":-1,"value":[1,1]}]}]}`,
			expectedError: "unknown feature",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := classifier.Parse([]byte(tc.raw))
			assert.ErrorContains(t, err, tc.expectedError)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := classifier.Load("testdata/missing.json")
	assert.ErrorContains(t, err, "read model")
}
