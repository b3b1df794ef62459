package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest checks a request DTO against its validate tags and
// returns the failures as envelope field errors. A nil slice means the
// payload is valid.
func ValidateRequest(req interface{}) []utils.FieldError {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return []utils.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]utils.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		out = append(out, utils.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "ip":
		return "must be a valid IP address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "datetime":
		return fmt.Sprintf("must match the %s layout", fe.Param())
	}
	return fmt.Sprintf("failed on the %s rule", fe.Tag())
}
