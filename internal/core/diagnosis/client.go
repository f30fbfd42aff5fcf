// Package diagnosis implements the submission workflow against the remote
// medical-assistant endpoint: request construction, upload progress,
// response normalization and the controller that ties it to the store.
package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dermassist/dermassist/internal/core/models"
)

// Client talks to the diagnosis endpoint. The service is an opaque black
// box; the client only knows the wire fields and the response shapes.
type Client struct {
	endpoint string
	httpc    *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// SubmitInput is everything one diagnosis exchange needs.
type SubmitInput struct {
	Image     []byte
	ImageName string
	Symptoms  string
	Profile   models.Profile
	SessionID string // omitted from the form when empty
}

// Diagnose performs one multipart POST and returns the normalized result.
// onProgress, when non-nil, receives whole upload percents in strictly
// increasing order, clamped to [0,100].
func (c *Client) Diagnose(ctx context.Context, in SubmitInput, onProgress func(int)) (*models.Result, error) {
	body, contentType, err := encodeForm(in, true)
	if err != nil {
		return nil, &SubmissionError{Message: FallbackErrorMessage, err: err}
	}

	raw, err := c.post(ctx, body, contentType, onProgress)
	if err != nil {
		return nil, err
	}
	return normalizeResult(raw, in.Profile), nil
}

// Chat performs a text-only exchange with the same endpoint: identical form
// fields minus the image part.
func (c *Client) Chat(ctx context.Context, message, sessionID string, profile models.Profile) (*models.ChatReply, error) {
	in := SubmitInput{Symptoms: message, Profile: profile, SessionID: sessionID}
	body, contentType, err := encodeForm(in, false)
	if err != nil {
		return nil, &SubmissionError{Message: FallbackErrorMessage, err: err}
	}

	raw, err := c.post(ctx, body, contentType, nil)
	if err != nil {
		return nil, err
	}
	return normalizeChat(raw), nil
}

// encodeForm builds the multipart body. Field names are fixed by the
// service: image, message, user_name, age, session_id.
func encodeForm(in SubmitInput, withImage bool) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if withImage {
		part, err := w.CreateFormFile("image", in.ImageName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(in.Image); err != nil {
			return nil, "", err
		}
	}
	fields := map[string]string{
		"message":   in.Symptoms,
		"user_name": in.Profile.Name,
		"age":       in.Profile.AgeField(),
	}
	if in.SessionID != "" {
		fields["session_id"] = in.SessionID
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) post(ctx context.Context, body *bytes.Buffer, contentType string, onProgress func(int)) (rawResponse, error) {
	var raw rawResponse

	total := int64(body.Len())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, newProgressReader(body, total, onProgress))
	if err != nil {
		return raw, &SubmissionError{Message: FallbackErrorMessage, err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = total

	log.Debug().Str("endpoint", c.endpoint).Int64("bytes", total).Msg("submitting to diagnosis endpoint")

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("diagnosis request failed")
		return raw, &SubmissionError{Message: FallbackErrorMessage, err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return raw, &SubmissionError{Message: FallbackErrorMessage, StatusCode: resp.StatusCode, err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := FallbackErrorMessage
		var er errorResponse
		if json.Unmarshal(data, &er) == nil && er.Message != "" {
			message = er.Message
		}
		log.Warn().Int("status", resp.StatusCode).Str("message", message).Msg("diagnosis endpoint returned error")
		return raw, &SubmissionError{
			Message:    message,
			StatusCode: resp.StatusCode,
			err:        fmt.Errorf("endpoint returned status %d", resp.StatusCode),
		}
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return raw, &SubmissionError{Message: FallbackErrorMessage, StatusCode: resp.StatusCode, err: err}
	}
	return raw, nil
}
