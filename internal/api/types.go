package api

import (
	"encoding/json"
	"net/http"
)

// AppointmentRequest is the POST /api/appointment body. All fields except
// message are required.
type AppointmentRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Date       string `json:"date"`
	Department string `json:"department"`
	Therapist  string `json:"therapist"`
	Message    string `json:"message"`
}

type SubmitResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Details: details,
	})
}
