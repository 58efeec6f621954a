package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() ContactSubmission {
	return ContactSubmission{
		Name:    "Jordan Avery",
		Email:   "jordan@example.com",
		Subject: "Strategy engagement",
		Message: "We would like to discuss a market entry plan for next year.",
	}
}

func TestContactSubmission_ValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ContactSubmission)
		wantMsg string
	}{
		{name: "valid", mutate: func(*ContactSubmission) {}},
		{name: "missing name", mutate: func(c *ContactSubmission) { c.Name = "" }, wantMsg: "All fields are required"},
		{name: "whitespace subject", mutate: func(c *ContactSubmission) { c.Subject = "   " }, wantMsg: "All fields are required"},
		{name: "missing message", mutate: func(c *ContactSubmission) { c.Message = "" }, wantMsg: "All fields are required"},
		{name: "bad email", mutate: func(c *ContactSubmission) { c.Email = "bad" }, wantMsg: "Invalid email format"},
		{name: "email with space", mutate: func(c *ContactSubmission) { c.Email = "a b@example.com" }, wantMsg: "Invalid email format"},
		{name: "short fields allowed by api", mutate: func(c *ContactSubmission) { c.Name = "J"; c.Subject = "Hi"; c.Message = "short" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			err := sub.ValidateRequired()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, EINVALID, ErrorCode(err))
			assert.Equal(t, tt.wantMsg, ErrorMessage(err))
		})
	}
}

func TestContactSubmission_Validate(t *testing.T) {
	t.Run("valid submission passes", func(t *testing.T) {
		assert.NoError(t, validSubmission().Validate())
	})

	t.Run("reports every failing field in order", func(t *testing.T) {
		sub := ContactSubmission{Name: "Jo", Email: "bad", Subject: "Hi", Message: "short"}

		err := sub.Validate()
		require.Error(t, err)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, []string{"email", "subject", "message"}, ve.Order)
		assert.Equal(t, "Invalid email format", ve.Fields["email"])
		assert.Equal(t, "Subject must be at least 5 characters", ve.Fields["subject"])
		assert.Equal(t, "Message must be at least 20 characters", ve.Fields["message"])
		assert.Equal(t, "Invalid email format", ErrorMessage(err))
	})

	t.Run("required messages for empty form", func(t *testing.T) {
		var ve *ValidationError
		require.True(t, errors.As(ContactSubmission{}.Validate(), &ve))
		assert.Equal(t, "Name is required", ve.Fields["name"])
		assert.Equal(t, "Email is required", ve.Fields["email"])
		assert.Equal(t, "Subject is required", ve.Fields["subject"])
		assert.Equal(t, "Message is required", ve.Fields["message"])
	})

	t.Run("lengths count characters not bytes", func(t *testing.T) {
		sub := validSubmission()
		sub.Name = "Zoë"
		assert.NoError(t, sub.Validate())

		sub.Name = "é"
		assert.Error(t, sub.Validate())
	})
}

func TestErrorHelpers(t *testing.T) {
	internal := Internal(errors.New("boom"), "contact.submit")
	assert.Equal(t, EINTERNAL, ErrorCode(internal))
	assert.Equal(t, genericMessage, ErrorMessage(internal))
	assert.Equal(t, "contact.submit", ErrorOp(internal))
	assert.Contains(t, internal.Error(), "boom")

	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("plain")))
	assert.Equal(t, "", ErrorCode(nil))

	wrapped := Wrap(context.DeadlineExceeded, EUNAVAILABLE, "contact.submit", "Submission was interrupted")
	assert.Equal(t, EUNAVAILABLE, ErrorCode(fmt.Errorf("handler: %w", wrapped)))
	assert.Equal(t, "Submission was interrupted", ErrorMessage(wrapped))
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
}
