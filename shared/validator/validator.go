package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"roomdesk/shared/constant"
	"roomdesk/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// registerCalendarValidation accepts a calendar day (2006-01-02) or a full RFC 3339 timestamp.
func registerCalendarValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	if _, err := time.Parse(constant.CalendarFormat, str); err == nil {
		return true
	}

	_, err := time.Parse(time.RFC3339, str)

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("calendar", registerCalendarValidation); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	err := decoder.Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
