package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/you/elearnauth/domain"
)

const (
	nameRules     = "required,min=2,max=30"
	emailRules    = "required,email"
	passwordRules = "required,min=8"
	avatarRules   = "required,url"
)

var validate = validator.New()

// checkField validates value against rules and reports the first failure as domain.ErrValidation
func checkField(field, value, rules string) error {
	err := validate.Var(value, rules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, describe(field, verrs[0]))
	}
	return fmt.Errorf("%w: %s is invalid", domain.ErrValidation, field)
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
