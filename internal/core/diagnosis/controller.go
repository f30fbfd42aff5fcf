package diagnosis

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dermassist/dermassist/internal/core/models"
	"github.com/dermassist/dermassist/internal/core/store"
)

// Phase is the controller's externally visible state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseFailed
)

// Status is emitted to the notify callback on every phase or progress
// change. After success and failure alike the controller settles back to
// Idle with percent 0; PhaseFailed is a transient notification carrying the
// displayable message.
type Status struct {
	Phase   Phase
	Percent int
	Message string
}

// Controller owns one submission cycle: validate, submit with progress,
// normalize, write back to the store. A second Submit while one is
// outstanding is rejected with ErrSubmissionInFlight.
type Controller struct {
	client *Client
	store  *store.Store
	notify func(Status)

	mu       sync.Mutex
	inFlight bool
}

// NewController wires the client to the store. notify may be nil.
func NewController(client *Client, st *store.Store, notify func(Status)) *Controller {
	return &Controller{client: client, store: st, notify: notify}
}

// Submit runs one diagnosis exchange using the store's current fields.
//
// Preconditions (checked before any network activity): an image has been
// selected, and the symptom text is non-empty after trimming. Violations
// return a *ValidationError. On success the normalized result and the
// submitted profile are written to the store; on failure the store's prior
// diagnosis is left untouched.
func (c *Controller) Submit(ctx context.Context, sessionID string) (*models.Result, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
		c.emit(Status{Phase: PhaseIdle})
	}()

	snap := c.store.Snapshot()
	if len(snap.Image) == 0 || strings.TrimSpace(snap.Symptoms) == "" {
		err := &ValidationError{Reason: "Please provide both an image and a symptom description."}
		c.emit(Status{Phase: PhaseFailed, Message: err.Reason})
		return nil, err
	}

	c.emit(Status{Phase: PhaseSubmitting})

	in := SubmitInput{
		Image:     snap.Image,
		ImageName: snap.ImageName,
		Symptoms:  snap.Symptoms,
		Profile:   snap.User,
		SessionID: sessionID,
	}
	res, err := c.client.Diagnose(ctx, in, func(percent int) {
		c.emit(Status{Phase: PhaseSubmitting, Percent: percent})
	})
	if err != nil {
		c.emit(Status{Phase: PhaseFailed, Message: UserMessage(err)})
		return nil, err
	}

	c.store.SetDiagnosis(res)
	c.store.SetUser(res.UserInfo)
	return res, nil
}

func (c *Controller) emit(s Status) {
	if c.notify != nil {
		c.notify(s)
	}
}

// UserMessage extracts the displayable message from a workflow error. No
// error escapes to presentation without passing through here or Status.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	var se *SubmissionError
	if errors.As(err, &se) {
		return se.Message
	}
	if err != nil {
		return FallbackErrorMessage
	}
	return ""
}
