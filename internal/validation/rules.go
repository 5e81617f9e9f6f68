// Package validation holds the jellydator rules shared by query parameters and stream payloads.
// String rules skip empty values, so combine them with validation.Required when needed.
package validation

import (
	"strconv"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/recommendations/internal/errors"
)

// DateLayout is the calendar date format accepted by query parameters.
const DateLayout = "2006-01-02"

// WrapValidationError wraps validation errors as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Date validates that a string is a YYYY-MM-DD calendar date.
var Date = validation.Date(DateLayout).Error("must be a date in YYYY-MM-DD format")

// PositiveID validates that a query parameter is a positive base-10 integer.
var PositiveID = validation.NewStringRuleWithError(
	func(s string) bool {
		n, err := strconv.ParseInt(s, 10, 64)
		return err == nil && n > 0
	},
	validation.NewError("validation_positive_id", "must be a positive integer"),
)

// NotBlank rejects whitespace-only strings.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// OneOf validates that a string is one of the allowed values.
func OneOf(values ...string) validation.Rule {
	allowed := make([]interface{}, 0, len(values))
	for _, v := range values {
		allowed = append(allowed, v)
	}
	return validation.In(allowed...).Error("must be one of: " + strings.Join(values, ", "))
}
