package models

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the storage and wire form of calendar dates.
const DateLayout = "2006-01-02"

// FormatDate renders the UTC calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks a record against its struct tags.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	return nil
}

// ValidateAll validates every element and reports the first failure with
// its index.
func ValidateAll[T any](records []T) error {
	for i := range records {
		if err := validate.Struct(records[i]); err != nil {
			return fmt.Errorf("validation: item %d: %w", i, err)
		}
	}
	return nil
}
