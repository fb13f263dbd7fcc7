package dealkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success   bool           `json:"success"`
	Data      any            `json:"data,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	Error     *ErrorDetail   `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Message string        `json:"message"`
	Code    int           `json:"code"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails carries structured failure data alongside the message.
type ErrorDetails struct {
	ValidationErrors map[string][]string `json:"validation_errors,omitempty"`
}

// JSON writes a success envelope with the given status code.
func JSON(w http.ResponseWriter, status int, data any, meta map[string]any) error {
	return writeEnvelope(w, status, Envelope{
		Success:   true,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now().UTC(),
	})
}

// JSONError writes an error envelope, classifying err by type.
//
// ValidationError renders as HTTP 422 with a per-field message map under
// details.validation_errors. HTTPError renders with its own status code.
// Anything else renders as an opaque 500 so internals never leak to clients.
func JSONError(w http.ResponseWriter, err error) error {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{
		Message: "An error occurred processing your request",
		Code:    status,
	}

	var validationErr ValidationError
	var httpErr HTTPError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
		detail.Message = "Validation failed"
		detail.Code = status
		if len(validationErr) > 0 {
			detail.Details = &ErrorDetails{ValidationErrors: map[string][]string(validationErr)}
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		detail.Message = http.StatusText(httpErr.Code)
		detail.Code = status
	}

	return writeEnvelope(w, status, Envelope{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now().UTC(),
	})
}

func writeEnvelope(w http.ResponseWriter, status int, body Envelope) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
