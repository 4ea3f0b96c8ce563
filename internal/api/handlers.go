package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/legoephysio/clinic-booking/internal/booking"
)

func submitAppointmentHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		appt, err := svc.Submit(r.Context(), booking.Submission{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Date:       req.Date,
			Department: req.Department,
			Therapist:  req.Therapist,
			Message:    req.Message,
		})
		if err != nil {
			handleSubmitError(w, r, err)
			return
		}

		log.Printf("appointment submitted id=%s department=%s request_id=%s",
			appt.ID, appt.Department, GetRequestID(r.Context()))

		writeJSON(w, http.StatusOK, SubmitResponse{Success: true})
	}
}

// handleSubmitError rejects malformed input with a field-level message;
// every post-validation failure collapses to one opaque response, with the
// real cause logged server-side only.
func handleSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *booking.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, "invalid_appointment", vErr.Error())
		return
	}

	log.Printf("appointment submission failed request_id=%s: %v", GetRequestID(r.Context()), err)
	writeError(w, http.StatusInternalServerError, "Failed to process appointment", "")
}
