package booking

import (
	"errors"
	"testing"
	"time"
)

func validSubmission() Submission {
	return Submission{
		Name:       "A",
		Email:      "a@x.com",
		Phone:      "555",
		Date:       "2030-01-01T10:00:00Z",
		Department: "Physio",
		Therapist:  "Dr. B",
	}
}

func TestSubmissionNormalize_Valid(t *testing.T) {
	appt, err := validSubmission().Normalize()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	if !appt.Date.Equal(want) {
		t.Errorf("expected date %s, got %s", want, appt.Date)
	}
	if appt.Message != "" {
		t.Errorf("expected empty message, got %q", appt.Message)
	}
}

func TestSubmissionNormalize_RequiredFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Submission)
	}{
		{"name", func(s *Submission) { s.Name = "" }},
		{"email", func(s *Submission) { s.Email = "" }},
		{"phone", func(s *Submission) { s.Phone = "  " }},
		{"date", func(s *Submission) { s.Date = "" }},
		{"department", func(s *Submission) { s.Department = "" }},
		{"therapist", func(s *Submission) { s.Therapist = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			_, err := sub.Normalize()
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, vErr.Field)
			}
		})
	}
}

func TestSubmissionNormalize_DateLayouts(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"rfc3339", "2030-01-01T10:00:00Z"},
		{"rfc3339 with offset", "2030-01-01T10:00:00+02:00"},
		{"datetime-local", "2030-01-01T10:00"},
		{"date only", "2030-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			sub.Date = tt.date
			if _, err := sub.Normalize(); err != nil {
				t.Fatalf("expected %q to parse, got %v", tt.date, err)
			}
		})
	}
}

func TestSubmissionNormalize_BadDate(t *testing.T) {
	sub := validSubmission()
	sub.Date = "next tuesday"

	_, err := sub.Normalize()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "date" {
		t.Errorf("expected field %q, got %q", "date", vErr.Field)
	}
}

func TestSubmissionNormalize_TrimsWhitespace(t *testing.T) {
	sub := validSubmission()
	sub.Name = "  A  "
	sub.Message = "  hello  "

	appt, err := sub.Normalize()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if appt.Name != "A" {
		t.Errorf("expected trimmed name, got %q", appt.Name)
	}
	if appt.Message != "hello" {
		t.Errorf("expected trimmed message, got %q", appt.Message)
	}
}
