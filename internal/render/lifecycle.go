package render

import "errors"

// State is the form submission lifecycle:
// Idle -> Submitting -> {Success, Failed} -> Submitting (next attempt).
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ErrSubmissionInFlight rejects a submission started while one is
// already pending. The pending request is never cancelled.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// Lifecycle holds the current form state, the latest rendered result,
// and the latest error message. A terminal state always clears the
// other's residue: success hides any prior error, failure hides any
// prior result. Nothing persists beyond the controller itself.
type Lifecycle struct {
	state   State
	result  DisplayState
	hasRes  bool
	message string
}

// NewLifecycle starts in the idle state.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateIdle}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	return l.state
}

// CanSubmit reports whether the submit control is enabled.
func (l *Lifecycle) CanSubmit() bool {
	return l.state != StateSubmitting
}

// BeginSubmit transitions to Submitting, disabling further submissions
// until the in-flight one resolves.
func (l *Lifecycle) BeginSubmit() error {
	if l.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	l.state = StateSubmitting
	return nil
}

// Succeed records a rendered result and clears any prior error.
func (l *Lifecycle) Succeed(result DisplayState) {
	l.state = StateSuccess
	l.result = result
	l.hasRes = true
	l.message = ""
}

// Fail records the user-facing error message and clears any prior
// result. No partial results are ever shown.
func (l *Lifecycle) Fail(message string) {
	l.state = StateFailed
	l.message = message
	l.result = DisplayState{}
	l.hasRes = false
}

// Result returns the rendered result, if the last submission succeeded.
func (l *Lifecycle) Result() (DisplayState, bool) {
	return l.result, l.hasRes
}

// ErrorMessage returns the message shown in the failed state.
func (l *Lifecycle) ErrorMessage() string {
	return l.message
}

// Reset returns to idle, dropping all residue.
func (l *Lifecycle) Reset() {
	*l = Lifecycle{state: StateIdle}
}
