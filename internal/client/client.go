// Package client submits validated passenger records to the prediction
// API and maps failures into the transport/scoring taxonomy the caller
// renders from.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/titanic/api/internal/models"
)

// DefaultTimeout bounds the single request. The service has no
// streaming responses; a stalled connection past this is treated as a
// transport failure.
const DefaultTimeout = 15 * time.Second

// ScoringError is an application-level failure: the service answered
// but could not produce a result.
type ScoringError struct {
	Message string
	Status  int
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("prediction failed (status %d): %s", e.Status, e.Message)
}

// TransportError is a network-level failure: unreachable service,
// timeout, or a response envelope that could not be decoded.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "prediction service unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client issues prediction requests. One request per submission, no
// automatic retry: a failure is surfaced immediately.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a client against baseURL with the default timeout.
func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logger,
	}
}

// envelope covers both the success and the failure payload shapes. A
// populated error field marks a failure even under a 200 status; that
// double-check guards against a server embedding errors in success
// responses.
type envelope struct {
	models.PredictionResult
	Error string `json:"error"`
}

// Predict submits one validated record and returns the scored result.
func (c *Client) Predict(ctx context.Context, in models.PassengerInput) (models.PredictionResult, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return models.PredictionResult{}, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return models.PredictionResult{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("prediction request failed", zap.Error(err))
		return models.PredictionResult{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			// No structured error payload: synthesize one from the status.
			return models.PredictionResult{}, &ScoringError{
				Message: http.StatusText(resp.StatusCode),
				Status:  resp.StatusCode,
			}
		}
		return models.PredictionResult{}, &TransportError{Err: fmt.Errorf("malformed response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return models.PredictionResult{}, &ScoringError{Message: msg, Status: resp.StatusCode}
	}
	if env.Error != "" {
		return models.PredictionResult{}, &ScoringError{Message: env.Error, Status: resp.StatusCode}
	}
	// The server always sets prediction_text on success. A 200 body
	// without it (e.g. "{}") is not a result the caller can render.
	if env.PredictionText == "" {
		return models.PredictionResult{}, &TransportError{Err: fmt.Errorf("malformed response: missing prediction payload")}
	}

	return env.PredictionResult, nil
}

// Health probes the service liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &TransportError{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ScoringError{Message: "service unhealthy", Status: resp.StatusCode}
	}
	return nil
}
