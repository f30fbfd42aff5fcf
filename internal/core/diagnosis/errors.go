package diagnosis

import "errors"

// FallbackErrorMessage is shown when a failed exchange carries no usable
// server message.
const FallbackErrorMessage = "Failed to get a diagnosis. Please try again."

// ErrSubmissionInFlight is returned by Submit while another submission is
// outstanding. Policy is reject, not cancel-and-replace.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// ValidationError reports locally-rejected input. No network call was made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// SubmissionError reports a failed network exchange: transport failure,
// non-2xx status, or an undecodable success body. Message is always safe to
// show to the user.
type SubmissionError struct {
	Message    string
	StatusCode int // 0 when the request never completed
	err        error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.err
}
