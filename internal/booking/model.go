package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Appointment is one persisted booking request. Rows are insert-only except
// for the Notified flag, which flips to true once both booking emails have
// gone out.
type Appointment struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Date       time.Time
	Department string
	Therapist  string
	Message    string
	Notified   bool
	CreatedAt  time.Time
}

// Submission carries the raw caller-supplied fields of a booking request,
// before validation and date coercion.
type Submission struct {
	Name       string
	Email      string
	Phone      string
	Date       string
	Department string
	Therapist  string
	Message    string
}

// NewAppointment is a validated submission ready to be persisted.
type NewAppointment struct {
	Name       string
	Email      string
	Phone      string
	Date       time.Time
	Department string
	Therapist  string
	Message    string
}

// Date layouts accepted from callers, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// Normalize checks field presence, coerces the date, and trims whitespace.
// Message may be empty. Returns a *ValidationError naming the first bad field.
func (s Submission) Normalize() (NewAppointment, error) {
	required := []struct {
		field string
		value string
	}{
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"date", s.Date},
		{"department", s.Department},
		{"therapist", s.Therapist},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return NewAppointment{}, &ValidationError{Field: f.field, Reason: "is required"}
		}
	}

	date, err := parseDate(strings.TrimSpace(s.Date))
	if err != nil {
		return NewAppointment{}, &ValidationError{Field: "date", Reason: "is not a valid timestamp"}
	}

	return NewAppointment{
		Name:       strings.TrimSpace(s.Name),
		Email:      strings.TrimSpace(s.Email),
		Phone:      strings.TrimSpace(s.Phone),
		Date:       date,
		Department: strings.TrimSpace(s.Department),
		Therapist:  strings.TrimSpace(s.Therapist),
		Message:    strings.TrimSpace(s.Message),
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
