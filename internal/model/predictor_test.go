package model

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titanic/api/internal/dataset"
	"github.com/titanic/api/internal/forest"
	"github.com/titanic/api/internal/models"
)

// fitTestPredictor trains a small forest over a reduced manifest; test
// runs do not need the full ensemble.
func fitTestPredictor(t *testing.T) *Predictor {
	t.Helper()

	enc := TrainingEncoders()
	passengers := dataset.Generate(300, dataset.DefaultSeed)
	x := make([][]float64, len(passengers))
	y := make([]int, len(passengers))
	for i, p := range passengers {
		x[i] = FeatureRow(p.Input, enc)
		y[i] = p.Survived
	}

	cfg := forest.Config{Trees: 20, MaxDepth: 6, MinSamplesSplit: 5, MinSamplesLeaf: 2, Seed: 42}
	f, err := forest.Fit(x, y, 2, cfg)
	require.NoError(t, err)

	predictor, err := NewPredictor(f, enc)
	require.NoError(t, err)
	return predictor
}

func samplePassenger() models.PassengerInput {
	return models.PassengerInput{
		Pclass:   1,
		Sex:      models.SexFemale,
		Age:      25,
		SibSp:    0,
		Parch:    0,
		Fare:     50,
		Embarked: models.EmbarkedCherbourg,
	}
}

func TestTrainingEncoderCodes(t *testing.T) {
	enc := TrainingEncoders()
	assert.Equal(t, 0, enc.EncodeSex(models.SexFemale))
	assert.Equal(t, 1, enc.EncodeSex(models.SexMale))
	assert.Equal(t, 0, enc.EncodeEmbarked(models.EmbarkedCherbourg))
	assert.Equal(t, 1, enc.EncodeEmbarked(models.EmbarkedQueenstown))
	assert.Equal(t, 2, enc.EncodeEmbarked(models.EmbarkedSouthampton))
}

func TestEncoderUnseenCategoryFallbacks(t *testing.T) {
	enc := TrainingEncoders()
	assert.Equal(t, enc.Sex[models.SexMale], enc.EncodeSex("unknown"))
	assert.Equal(t, enc.Embarked[models.EmbarkedSouthampton], enc.EncodeEmbarked("X"))
}

func TestEncodersValidate(t *testing.T) {
	assert.NoError(t, TrainingEncoders().Validate())

	broken := TrainingEncoders()
	delete(broken.Sex, models.SexFemale)
	assert.Error(t, broken.Validate())
}

func TestScoreContract(t *testing.T) {
	predictor := fitTestPredictor(t)

	result, err := predictor.Score(samplePassenger())
	require.NoError(t, err)

	assert.Contains(t, []int{0, 1}, result.Prediction)
	assert.GreaterOrEqual(t, result.SurvivalProbability, 0.0)
	assert.LessOrEqual(t, result.SurvivalProbability, 1.0)
	assert.InDelta(t, 1.0, result.SurvivalProbability+result.DeathProbability, 1e-9)
	assert.Equal(t, math.Max(result.SurvivalProbability, result.DeathProbability), result.Confidence)

	if result.Prediction == 1 {
		assert.Equal(t, models.TextSurvived, result.PredictionText)
	} else {
		assert.Equal(t, models.TextNotSurvived, result.PredictionText)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	predictor := fitTestPredictor(t)

	first, err := predictor.Score(samplePassenger())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := predictor.Score(samplePassenger())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestScoreAppliesDefaults(t *testing.T) {
	predictor := fitTestPredictor(t)

	withDefaults := samplePassenger()
	withDefaults.Age = math.NaN()
	withDefaults.Fare = math.NaN()
	withDefaults.Embarked = ""

	explicit := samplePassenger()
	explicit.Age = 30
	explicit.Fare = 32.2
	explicit.Embarked = models.EmbarkedSouthampton

	got, err := predictor.Score(withDefaults)
	require.NoError(t, err)
	want, err := predictor.Score(explicit)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	predictor := fitTestPredictor(t)
	dir := t.TempDir()

	require.NoError(t, Save(dir, predictorForest(t, predictor), predictor.Encoders()))

	loaded, err := Load(dir)
	require.NoError(t, err)

	want, err := predictor.Score(samplePassenger())
	require.NoError(t, err)
	got, err := loaded.Score(samplePassenger())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingArtifacts(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoadRejectsColumnMismatch(t *testing.T) {
	predictor := fitTestPredictor(t)
	dir := t.TempDir()
	require.NoError(t, Save(dir, predictorForest(t, predictor), predictor.Encoders()))

	// Corrupt the artifact's column layout.
	path := filepath.Join(dir, ModelFile)
	var artifact modelArtifact
	require.NoError(t, readJSON(path, &artifact))
	artifact.FeatureColumns = []string{"pclass", "sex", "age"}
	require.NoError(t, writeJSON(path, artifact))

	_, err := Load(dir)
	assert.Error(t, err)
}

func predictorForest(t *testing.T, p *Predictor) *forest.Forest {
	t.Helper()
	return p.forest
}
