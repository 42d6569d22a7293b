// Package model wraps the trained classifier and its categorical
// encoders behind a deterministic scoring operation.
package model

import (
	"math"

	"github.com/titanic/api/internal/forest"
	"github.com/titanic/api/internal/models"
)

// FeatureColumns is the training column order. Artifacts carrying a
// different layout are rejected at load.
var FeatureColumns = []string{"pclass", "sex", "age", "sibsp", "parch", "fare", "embarked"}

// ScoringError means the predictor could not produce a result for an
// input. Internal details stay out of user-facing messages.
type ScoringError struct {
	Message string
}

func (e *ScoringError) Error() string {
	return "scoring: " + e.Message
}

// Predictor scores validated passenger records. It is immutable after
// construction and safe for concurrent use.
type Predictor struct {
	forest   *forest.Forest
	encoders Encoders
}

// NewPredictor builds a predictor from a fitted forest and its
// training-time encoders.
func NewPredictor(f *forest.Forest, enc Encoders) (*Predictor, error) {
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	return &Predictor{forest: f, encoders: enc}, nil
}

// Encoders returns the category mapping in use.
func (p *Predictor) Encoders() Encoders {
	return p.encoders
}

// Score predicts survival for one passenger. Identical inputs against
// the same loaded model yield identical results.
func (p *Predictor) Score(in models.PassengerInput) (models.PredictionResult, error) {
	features, err := p.features(in)
	if err != nil {
		return models.PredictionResult{}, err
	}

	proba := p.forest.PredictProba(features)
	if len(proba) != 2 {
		return models.PredictionResult{}, &ScoringError{Message: "model output shape mismatch"}
	}

	deathProb := proba[0]
	survivalProb := proba[1]

	prediction := 0
	text := models.TextNotSurvived
	if survivalProb > deathProb {
		prediction = 1
		text = models.TextSurvived
	}

	return models.PredictionResult{
		Prediction:          prediction,
		SurvivalProbability: survivalProb,
		DeathProbability:    deathProb,
		PredictionText:      text,
		Confidence:          math.Max(survivalProb, deathProb),
	}, nil
}

// features builds the model input row, filling the historical defaults
// for absent values first.
func (p *Predictor) features(in models.PassengerInput) ([]float64, error) {
	if math.IsNaN(in.Age) {
		in.Age = 30
	}
	if math.IsNaN(in.Fare) {
		in.Fare = 32.2
	}
	if in.Embarked == "" {
		in.Embarked = models.EmbarkedSouthampton
	}

	row := FeatureRow(in, p.encoders)
	if len(row) != len(FeatureColumns) {
		return nil, &ScoringError{Message: "feature row shape mismatch"}
	}
	return row, nil
}

// FeatureRow encodes a passenger into the model input row in training
// column order. Training and inference both go through here, so the
// encoding cannot diverge between them.
func FeatureRow(in models.PassengerInput, enc Encoders) []float64 {
	return []float64{
		float64(in.Pclass),
		float64(enc.EncodeSex(in.Sex)),
		in.Age,
		float64(in.SibSp),
		float64(in.Parch),
		in.Fare,
		float64(enc.EncodeEmbarked(in.Embarked)),
	}
}
