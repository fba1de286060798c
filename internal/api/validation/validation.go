// Package validation contains request-level field validation shared by the
// HTTP handlers.
package validation

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
