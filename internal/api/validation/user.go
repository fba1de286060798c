package validation

import "strings"

// RegisterRequest mirrors the fields needed for register validation.
type RegisterRequest struct {
	Email    string
	Name     string
	Password string
}

// ValidateRegisterRequest validates the fields of a register request.
func ValidateRegisterRequest(req RegisterRequest) []FieldError {
	var errs []FieldError

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !strings.Contains(email, "@") || len(email) > 255 {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > 255 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
	}

	if len(req.Password) < 8 {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	return errs
}
