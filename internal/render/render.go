// Package render projects prediction results into display state and
// tracks the submission lifecycle.
package render

import (
	"math"
	"strconv"

	"github.com/titanic/api/internal/models"
)

// Outcome style tags.
const (
	StyleSurvived    = "survived"
	StyleNotSurvived = "not-survived"
)

// DisplayState is the pure, renderable projection of a prediction.
type DisplayState struct {
	OutcomeLabel         string
	OutcomeStyle         string
	ConfidenceLabel      string
	SurvivalBarWidth     float64
	DeathBarWidth        float64
	SurvivalPercentLabel string
	DeathPercentLabel    string
}

// Render maps a prediction result to its display state. It is
// deterministic: identical results always produce identical states.
// Bar widths are rounded independently and may not sum to exactly
// 100.0; that display artifact is intentional, no re-normalization.
func Render(r models.PredictionResult) DisplayState {
	style := StyleNotSurvived
	if r.Survived() {
		style = StyleSurvived
	}

	survivalPct := Percent(r.SurvivalProbability)
	deathPct := Percent(r.DeathProbability)

	return DisplayState{
		OutcomeLabel:         r.PredictionText,
		OutcomeStyle:         style,
		ConfidenceLabel:      PercentLabel(r.Confidence),
		SurvivalBarWidth:     survivalPct,
		DeathBarWidth:        deathPct,
		SurvivalPercentLabel: PercentLabel(r.SurvivalProbability),
		DeathPercentLabel:    PercentLabel(r.DeathProbability),
	}
}

// Percent converts a probability to a percentage rounded half away
// from zero to one decimal place.
func Percent(p float64) float64 {
	return math.Round(p*1000) / 10
}

// PercentLabel formats a probability as "23.0%".
func PercentLabel(p float64) string {
	return strconv.FormatFloat(Percent(p), 'f', 1, 64) + "%"
}
