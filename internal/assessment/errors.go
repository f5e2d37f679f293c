package assessment

import (
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/jonathan/readiness-check/internal/schemas"
)

// ErrNotFound is returned by a Store when no record has the requested id.
var ErrNotFound = errors.New("assessment not found")

// ValidationError reports a submission or identifier the caller must fix.
type ValidationError struct {
	Message string
	Errors  []FieldError
}

// FieldError is a user-facing message for one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// Messages shown instead of raw schema output for fields the form labels.
var fieldMessages = map[string]string{
	"name":               "Name is required",
	"email":              "Invalid email address",
	"technicalMcqAnswer": "Please select an answer",
	"portfolioUrl":       "Invalid URL",
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{
		Message: "Invalid input",
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

func newInputError(ve *jsonschema.ValidationError) *ValidationError {
	out := &ValidationError{Message: "Invalid input"}
	seen := make(map[FieldError]bool, len(ve.Errors))
	for _, e := range ve.Errors {
		fe := FieldError{Field: e.Field, Message: e.Message}
		if msg, ok := fieldMessages[e.Field]; ok {
			fe.Message = msg
		}
		if seen[fe] {
			continue
		}
		seen[fe] = true
		out.Errors = append(out.Errors, fe)
	}
	return out
}
