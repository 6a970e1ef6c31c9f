package openfin

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FieldError describes one rejected request field, as reported by the API.
type FieldError struct {
	Parameter string `json:"parameter"`
	Message   string `json:"message"`
	Code      string `json:"code"`
}

// APIError is a non-2xx response. Message carries the raw body when the
// server did not return the structured error shape.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []FieldError
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error (status %d): %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// ValidationError is a mutating request rejected with field-level detail.
// Callers branch on it with errors.As to distinguish "my input was bad"
// from transport or not-found failures.
type ValidationError struct {
	StatusCode int
	Details    []FieldError
}

func (e *ValidationError) Error() string {
	params := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		params = append(params, d.Parameter)
	}
	return fmt.Sprintf("validation failed (status %d): %s", e.StatusCode, strings.Join(params, ", "))
}

// parseAPIError decodes a non-2xx body into an APIError. Non-JSON bodies
// keep the raw text as the message.
func parseAPIError(status int, body []byte) error {
	var payload struct {
		Code    string       `json:"code"`
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}

	if err := json.Unmarshal(body, &payload); err != nil || (payload.Code == "" && payload.Message == "" && len(payload.Errors) == 0) {
		return &APIError{
			StatusCode: status,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	return &APIError{
		StatusCode: status,
		Code:       payload.Code,
		Message:    payload.Message,
		Details:    payload.Errors,
	}
}

// classifyValidation turns an APIError that carries field-level details into
// a ValidationError. Every other error passes through unchanged. Mutating
// operations share this instead of repeating the check per method.
func classifyValidation(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Details) > 0 {
		return &ValidationError{
			StatusCode: apiErr.StatusCode,
			Details:    apiErr.Details,
		}
	}
	return err
}
