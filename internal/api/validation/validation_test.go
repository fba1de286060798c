package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/folioforge/folioforge/internal/api/validation"
)

func fieldNames(errs []validation.FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateRegisterRequest_Valid(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Email:    "alex@example.com",
		Name:     "Alex",
		Password: "correct-horse",
	})
	assert.Empty(t, errs)
}

func TestValidateRegisterRequest_MissingFields(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{})
	assert.ElementsMatch(t, []string{"email", "name", "password"}, fieldNames(errs))
}

func TestValidateRegisterRequest_BadEmail(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Email:    "not-an-address",
		Name:     "Alex",
		Password: "correct-horse",
	})
	assert.Equal(t, []string{"email"}, fieldNames(errs))
}

func TestValidateRegisterRequest_ShortPassword(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Email:    "alex@example.com",
		Name:     "Alex",
		Password: "short",
	})
	assert.Equal(t, []string{"password"}, fieldNames(errs))
}

func TestValidateCreatePortfolioRequest_Valid(t *testing.T) {
	errs := validation.ValidateCreatePortfolioRequest(validation.CreatePortfolioRequest{
		Title: "My Portfolio",
	})
	assert.Empty(t, errs)
}

func TestValidateCreatePortfolioRequest_MissingTitle(t *testing.T) {
	errs := validation.ValidateCreatePortfolioRequest(validation.CreatePortfolioRequest{})
	assert.Equal(t, []string{"title"}, fieldNames(errs))
}
