package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Field is a named form value.
type Field struct {
	Name  string
	Value string
}

// ValidateDocument checks a raw JSON document against a JSON schema. The
// error return is reserved for documents or schemas that cannot be read at
// all; schema violations are reported in the result.
func ValidateDocument(doc []byte, schema map[string]interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	errors := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errors = append(errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errors,
	}, nil
}

// ValidateRequired reports every field whose trimmed value is empty, in the
// order given.
func ValidateRequired(fields ...Field) *ValidationResult {
	errors := []ValidationError{}
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			errors = append(errors, ValidationError{
				Field:   f.Name,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}
	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

// ParseAmount parses a finite, non-negative decimal form value.
func ParseAmount(field, value string) (float64, *ValidationError) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &ValidationError{Field: field, Message: "must be a number", Code: "INVALID_TYPE"}
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Message: "must not be negative", Code: "MINIMUM_VIOLATION"}
	}
	return n, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// Fields returns the names of the fields with errors.
func (vr *ValidationResult) Fields() []string {
	names := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		names[i] = err.Field
	}
	return names
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
