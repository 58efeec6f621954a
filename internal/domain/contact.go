package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// EmailPattern is the loose address check shared by the form and the API.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Minimum field lengths enforced by the contact form.
const (
	MinNameLength    = 2
	MinSubjectLength = 5
	MinMessageLength = 20
)

// ContactSubmission is a message sent through the contact form or API.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Normalize trims surrounding whitespace from every field.
func (c ContactSubmission) Normalize() ContactSubmission {
	return ContactSubmission{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Subject: strings.TrimSpace(c.Subject),
		Message: strings.TrimSpace(c.Message),
	}
}

// ValidateRequired applies the API rules: every field present and a
// well-formed email. Whitespace-only values count as missing.
func (c ContactSubmission) ValidateRequired() error {
	const op = "contact.validate"
	n := c.Normalize()
	if n.Name == "" || n.Email == "" || n.Subject == "" || n.Message == "" {
		return Invalid(op, "All fields are required")
	}
	if !EmailPattern.MatchString(n.Email) {
		return Invalid(op, "Invalid email format")
	}
	return nil
}

// Validate applies the full form rules and reports every failing field.
func (c ContactSubmission) Validate() error {
	n := c.Normalize()
	ve := NewValidationError("contact.validate")

	switch {
	case n.Name == "":
		ve.Add("name", "Name is required")
	case utf8.RuneCountInString(n.Name) < MinNameLength:
		ve.Add("name", "Name must be at least 2 characters")
	}

	switch {
	case n.Email == "":
		ve.Add("email", "Email is required")
	case !EmailPattern.MatchString(n.Email):
		ve.Add("email", "Invalid email format")
	}

	switch {
	case n.Subject == "":
		ve.Add("subject", "Subject is required")
	case utf8.RuneCountInString(n.Subject) < MinSubjectLength:
		ve.Add("subject", "Subject must be at least 5 characters")
	}

	switch {
	case n.Message == "":
		ve.Add("message", "Message is required")
	case utf8.RuneCountInString(n.Message) < MinMessageLength:
		ve.Add("message", "Message must be at least 20 characters")
	}

	return ve.Err()
}

// ContactThanks is the acknowledgement returned for an accepted submission.
const ContactThanks = "Thank you for contacting us! We will get back to you within 24 hours."

// ContactReceipt records an accepted submission.
type ContactReceipt struct {
	ID         uuid.UUID
	Channel    string
	Submission ContactSubmission
	ReceivedAt time.Time
}
