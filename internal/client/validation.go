package client

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("room_type", func(fl validator.FieldLevel) bool {
		return models.RoomType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("payment_type", func(fl validator.FieldLevel) bool {
		return models.PaymentType(fl.Field().String()).Valid()
	})
	return v
}

// checkPayload runs the struct's validate tags and turns failures into a PreconditionError.
func checkPayload(what string, payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &PreconditionError{Message: fmt.Sprintf("Invalid %s", what), Err: err}
	}
	return &PreconditionError{
		Message: fmt.Sprintf("Invalid %s", what),
		Details: formatValidationErrors(validationErrs),
		Err:     err,
	}
}

func formatValidationErrors(errs validator.ValidationErrors) []dtos.ValidationErrorDetail {
	details := make([]dtos.ValidationErrorDetail, 0, len(errs))
	for _, fe := range errs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", fe.Field())
		case "gt":
			msg = fmt.Sprintf("%s must be a positive number", fe.Field())
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
		case "room_type":
			msg = fmt.Sprintf("%s must be one of [Single Double Dormitory]", fe.Field())
		case "payment_type":
			msg = fmt.Sprintf("%s must be one of [rent deposit utility other]", fe.Field())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", fe.Field())
		case "datetime":
			msg = fmt.Sprintf("%s must be a date formatted YYYY-MM-DD", fe.Field())
		default:
			msg = fmt.Sprintf("%s failed the '%s' check", fe.Field(), fe.Tag())
		}
		details = append(details, dtos.ValidationErrorDetail{
			Field:   fe.Field(),
			Message: msg,
			Code:    utils.ErrCodeValidation,
		})
	}
	return details
}

// coercionError wraps a form normalisation failure.
func coercionError(what string, err error) error {
	return &PreconditionError{Message: fmt.Sprintf("Invalid %s: %v", what, err), Err: err}
}
