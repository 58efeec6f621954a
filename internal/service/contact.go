// Package service contains the business logic layer.
//
// This file implements the contact service, which accepts messages sent
// through the contact form and the JSON API.
package service

import (
	"context"
	"html"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/DukeRupert/futureforward/internal/domain"
	"github.com/DukeRupert/futureforward/internal/metrics"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// =============================================================================
// Interface Definition
// =============================================================================

// ContactService defines the contact submission operations.
type ContactService interface {
	// Submit validates and accepts a submission arriving on channel
	// (metrics.ChannelAPI or metrics.ChannelForm).
	// Returns domain.EINVALID or *domain.ValidationError for bad input.
	Submit(ctx context.Context, channel string, sub domain.ContactSubmission) (*domain.ContactReceipt, error)

	// Recent returns up to limit accepted submissions, newest first.
	Recent(limit int) []domain.ContactReceipt
}

// =============================================================================
// Implementation
// =============================================================================

const (
	// recentCapacity bounds the in-memory list shown on the admin dashboard.
	recentCapacity = 50

	// logMessageRunes caps how much of a message body reaches the logs.
	logMessageRunes = 200
)

type contactService struct {
	logger    *slog.Logger
	delay     time.Duration
	sanitizer *bluemonday.Policy
	now       func() time.Time

	mu     sync.Mutex
	recent []domain.ContactReceipt
}

// ContactServiceConfig holds dependencies for the contact service.
type ContactServiceConfig struct {
	Logger *slog.Logger

	// Delay is waited before a submission is acknowledged.
	Delay time.Duration
}

// NewContactService creates a new ContactService.
func NewContactService(cfg ContactServiceConfig) ContactService {
	return &contactService{
		logger:    cfg.Logger,
		delay:     cfg.Delay,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// =============================================================================
// Submit
// =============================================================================

func (s *contactService) Submit(ctx context.Context, channel string, sub domain.ContactSubmission) (*domain.ContactReceipt, error) {
	const op = "contact.submit"

	// The JSON API only requires presence and a valid email; the form
	// enforces the full length rules.
	var err error
	if channel == metrics.ChannelForm {
		err = sub.Validate()
	} else {
		err = sub.ValidateRequired()
	}
	if err != nil {
		metrics.ContactSubmission(channel, metrics.OutcomeInvalid)
		return nil, err
	}

	if err := s.wait(ctx); err != nil {
		metrics.ContactSubmission(channel, metrics.OutcomeFailed)
		return nil, domain.Wrap(err, domain.EUNAVAILABLE, op, "Submission was interrupted")
	}

	receipt := domain.ContactReceipt{
		ID:         uuid.New(),
		Channel:    channel,
		Submission: s.sanitize(sub.Normalize()),
		ReceivedAt: s.now(),
	}

	s.logger.Info("contact submission received",
		"submission_id", receipt.ID,
		"channel", channel,
		"name", receipt.Submission.Name,
		"email", receipt.Submission.Email,
		"subject", receipt.Submission.Subject,
		"message", truncate(receipt.Submission.Message, logMessageRunes),
	)

	s.remember(receipt)
	metrics.ContactSubmission(channel, metrics.OutcomeAccepted)

	return &receipt, nil
}

// wait sleeps for the configured delay unless ctx ends first.
func (s *contactService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sanitize strips any markup so stored and logged values are plain text.
// Entities are decoded again because templates escape on output.
func (s *contactService) sanitize(sub domain.ContactSubmission) domain.ContactSubmission {
	clean := func(v string) string {
		return html.UnescapeString(s.sanitizer.Sanitize(v))
	}
	return domain.ContactSubmission{
		Name:    clean(sub.Name),
		Email:   clean(sub.Email),
		Subject: clean(sub.Subject),
		Message: clean(sub.Message),
	}
}

// =============================================================================
// Recent
// =============================================================================

func (s *contactService) remember(r domain.ContactReceipt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recent = append(s.recent, r)
	if len(s.recent) > recentCapacity {
		s.recent = s.recent[len(s.recent)-recentCapacity:]
	}
}

func (s *contactService) Recent(limit int) []domain.ContactReceipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.recent) {
		limit = len(s.recent)
	}
	out := make([]domain.ContactReceipt, 0, limit)
	for i := len(s.recent) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.recent[i])
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
