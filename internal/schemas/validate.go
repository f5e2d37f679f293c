// Package schemas provides JSON Schema validation for request bodies and model responses.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// RootField names errors that apply to the whole document.
const RootField = "(root)"

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Type    string // gojsonschema error type, e.g. "required", "string_gte", "format"
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Fields returns the distinct field names that failed, in order of first appearance.
func (ve *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(ve.Errors))
	var fields []string
	for _, e := range ve.Errors {
		if !seen[e.Field] {
			seen[e.Field] = true
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validator checks documents against a compiled schema. It is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// Compile parses a JSON Schema document.
func Compile(schemaDoc []byte) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaDoc))
	if err != nil {
		return nil, &SchemaLoadError{Message: "invalid schema document", Cause: err}
	}
	return &Validator{schema: schema}, nil
}

// MustCompile is like Compile but panics if the schema cannot be parsed.
// Use this for schemas embedded at build time.
func MustCompile(schemaDoc []byte) *Validator {
	v, err := Compile(schemaDoc)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks a JSON document. It returns nil or a *ValidationError; a
// document that is not JSON at all is reported as a single root error.
func (v *Validator) Validate(doc []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{
			Field:   RootField,
			Type:    "invalid_json",
			Message: fmt.Sprintf("body is not valid JSON: %v", err),
		}}}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   fieldName(desc),
			Type:    desc.Type(),
			Message: desc.Description(),
		})
	}

	return validationErr
}

// fieldName reports the offending property. gojsonschema attributes missing
// required properties to the parent object, so those are resolved from details.
func fieldName(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok && prop != "" {
			if field == "" || field == RootField {
				return prop
			}
			return field + "." + prop
		}
	}
	if field == "" {
		return RootField
	}
	return field
}
