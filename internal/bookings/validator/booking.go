package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate checks a fully-populated booking record: struct tags plus the
// date-ordering invariant (check-out is exclusive and must come strictly
// after check-in).
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !booking.CheckOut.After(booking.CheckIn) {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckOut",
				Message: "check-out must be after check-in",
			},
		}
	}

	return nil
}

// ValidateStay checks the requested dates before a booking exists: ordering
// plus the no-past-check-in rule relative to the supplied "today".
func (v *BookingValidator) ValidateStay(checkIn, checkOut, today time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckOut",
				Message: "check-out must be after check-in",
			},
		}
	}
	if checkIn.Before(today) {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckIn",
				Message: "check-in date cannot be in the past",
			},
		}
	}
	return nil
}

// ValidateGuests checks the guest count against a room's per-unit capacity.
func (v *BookingValidator) ValidateGuests(guests, capacity int) error {
	if guests < 1 || guests > capacity {
		return ValidationErrors{
			ValidationError{
				Field:   "Guests",
				Message: fmt.Sprintf("guest count must be between 1 and %d", capacity),
			},
		}
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
