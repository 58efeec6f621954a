package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DukeRupert/futureforward/internal/domain"
)

// StatusDisplayDuration is how long a submission result stays visible.
const StatusDisplayDuration = 5 * time.Second

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit validates sub with the form rules and, if it passes, posts it once.
// A *domain.ValidationError means no request was sent. Failures are not
// retried, and concurrent calls each send their own request.
func (c *Client) Submit(ctx context.Context, sub domain.ContactSubmission) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(sub.Normalize())
	if err != nil {
		return "", fmt.Errorf("encode contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contact", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("contact submit failed", "error", err)
		return "", &Error{Message: FallbackMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", responseError(resp)
	}

	var out contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &Error{Status: resp.StatusCode, Message: FallbackMessage, Err: fmt.Errorf("decode contact response: %w", err)}
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = FallbackMessage
		}
		return "", &Error{Status: resp.StatusCode, Message: msg}
	}
	return out.Message, nil
}

// StatusKind is the outcome shown after a submission.
type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the transient banner shown after a submission. It is visible for
// StatusDisplayDuration after ShownAt and idle afterwards.
type Status struct {
	Kind    StatusKind
	Message string
	ShownAt time.Time
}

// NewStatus converts the result of Submit into a banner shown at now.
// Validation failures are reported next to fields, not in the banner, so
// they produce an idle status.
func NewStatus(message string, err error, now time.Time) Status {
	var netErr *Error
	switch {
	case err == nil:
		return Status{Kind: StatusSuccess, Message: message, ShownAt: now}
	case errors.As(err, &netErr):
		return Status{Kind: StatusError, Message: netErr.Message, ShownAt: now}
	case domain.ErrorCode(err) == domain.EINVALID:
		return Status{Kind: StatusIdle}
	default:
		return Status{Kind: StatusError, Message: FallbackMessage, ShownAt: now}
	}
}

// At returns the status as it should appear at now.
func (s Status) At(now time.Time) Status {
	if s.Kind == StatusIdle || now.Sub(s.ShownAt) >= StatusDisplayDuration {
		return Status{Kind: StatusIdle}
	}
	return s
}
