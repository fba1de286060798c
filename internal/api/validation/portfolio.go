package validation

import "strings"

// CreatePortfolioRequest mirrors the fields needed for create portfolio validation.
type CreatePortfolioRequest struct {
	Title string
}

// ValidateCreatePortfolioRequest validates the fields of a create portfolio request.
func ValidateCreatePortfolioRequest(req CreatePortfolioRequest) []FieldError {
	var errs []FieldError

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > 255 {
		errs = append(errs, FieldError{Field: "title", Message: "title must be at most 255 characters"})
	}

	return errs
}
