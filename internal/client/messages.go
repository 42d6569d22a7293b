package client

import (
	"errors"

	"github.com/titanic/api/internal/validate"
)

// User-facing failure messages. Transport failures get distinct wording
// from scoring failures so the user can tell "try again later" from
// "fix your input".
const (
	MsgServiceUnreachable = "Service unreachable. Please try again later."
	MsgPredictionFailed   = "Prediction failed. Please try again."
)

// UserMessage converts any submission error into the single message
// shown in the failed state. Validation errors are surfaced verbatim;
// internal details never are.
func UserMessage(err error) string {
	var vErr *validate.Error
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return MsgServiceUnreachable
	}
	return MsgPredictionFailed
}
