// Package shared holds the uniform result envelope every endpoint returns.
// Domain errors never propagate as unhandled faults: handlers convert them
// here into {success, message, errors, timestamp} bodies.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
)

// Envelope is the uniform operation result returned to callers.
type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WriteSuccess writes a success envelope with the given payload.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// WriteError converts a domain error into a failure envelope. Uncoded
// errors map to 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)

	message := "internal error"
	errs := []string{message}
	var de *dErrors.Error
	if errors.As(err, &de) && de.Code != dErrors.CodeInternal {
		message = de.Message
		errs = append([]string{de.Message}, de.Details...)
	}

	writeJSON(w, statusFor(code), Envelope{
		Success:   false,
		Message:   message,
		Errors:    errs,
		Timestamp: time.Now().UTC(),
	})
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeCertification:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeIntegrity:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
