package dto

import (
	"errors"
	"fmt"
	"strings"

	customerrors "thyrocheck/internal/customErrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct turns the first failing field into a user-facing 400.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return customerrors.ErrBadRequest
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return customerrors.BadRequest(fmt.Sprintf("Please provide %s.", field))
	case "email":
		return customerrors.BadRequest("Please provide a valid email address.")
	case "min":
		return customerrors.BadRequest(fmt.Sprintf("The %s must be at least %s characters long.", field, fe.Param()))
	default:
		return customerrors.BadRequest(fmt.Sprintf("Invalid %s.", field))
	}
}
