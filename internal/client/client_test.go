package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/titanic/api/internal/models"
	"github.com/titanic/api/internal/validate"
)

func testPassenger() models.PassengerInput {
	return models.PassengerInput{
		Pclass:   3,
		Sex:      models.SexMale,
		Age:      22,
		SibSp:    1,
		Parch:    0,
		Fare:     7.25,
		Embarked: models.EmbarkedSouthampton,
	}
}

func TestPredictSuccess(t *testing.T) {
	want := models.PredictionResult{
		Prediction:          0,
		SurvivalProbability: 0.23,
		DeathProbability:    0.77,
		PredictionText:      models.TextNotSurvived,
		Confidence:          0.77,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)

		var in models.PassengerInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, testPassenger(), in)

		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	cli := New(srv.URL, zap.NewNop())
	got, err := cli.Predict(context.Background(), testPassenger())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPredictErrorStatusWithPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid age: must be between 0 and 100, got 150"})
	}))
	defer srv.Close()

	cli := New(srv.URL, zap.NewNop())
	_, err := cli.Predict(context.Background(), testPassenger())

	var sErr *ScoringError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, http.StatusBadRequest, sErr.Status)
	assert.Contains(t, sErr.Message, "invalid age")
}

func TestPredictErrorStatusWithoutPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream blew up"))
	}))
	defer srv.Close()

	cli := New(srv.URL, zap.NewNop())
	_, err := cli.Predict(context.Background(), testPassenger())

	// No structured payload: a generic error carrying the status.
	var sErr *ScoringError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, http.StatusBadGateway, sErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), sErr.Message)
}

func TestPredictSuccessStatusWithEmbeddedError(t *testing.T) {
	// Legacy contract: a 200 carrying an error field is still a failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "Prediction failed: shape mismatch"})
	}))
	defer srv.Close()

	cli := New(srv.URL, zap.NewNop())
	_, err := cli.Predict(context.Background(), testPassenger())

	var sErr *ScoringError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, http.StatusOK, sErr.Status)
	assert.Contains(t, sErr.Message, "Prediction failed")
}

func TestPredictConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	cli := New(srv.URL, zap.NewNop())
	_, err := cli.Predict(context.Background(), testPassenger())

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)

	var sErr *ScoringError
	assert.False(t, errors.As(err, &sErr), "network failures must not surface as scoring errors")
}

func TestPredictMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	cli := New(srv.URL, zap.NewNop())
	_, err := cli.Predict(context.Background(), testPassenger())

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
}

func TestPredictEmptySuccessBody(t *testing.T) {
	// "{}" decodes cleanly but carries no result; returning a zero-value
	// PredictionResult would render as a confident death prediction.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	cli := New(srv.URL, zap.NewNop())
	res, err := cli.Predict(context.Background(), testPassenger())

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Zero(t, res)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "healthy", "model_loaded": true})
	}))
	defer srv.Close()

	cli := New(srv.URL, zap.NewNop())
	assert.NoError(t, cli.Health(context.Background()))
}

func TestUserMessageTaxonomy(t *testing.T) {
	vErr := &validate.Error{Field: "age", Reason: "must be between 0 and 100, got 150"}
	assert.Equal(t, vErr.Error(), UserMessage(vErr))

	assert.Equal(t, MsgServiceUnreachable, UserMessage(&TransportError{Err: context.DeadlineExceeded}))
	assert.Equal(t, MsgPredictionFailed, UserMessage(&ScoringError{Message: "shape mismatch", Status: 500}))
}
