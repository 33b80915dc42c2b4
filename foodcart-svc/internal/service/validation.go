package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
)

var ErrValidation = errors.New("validation failed")

type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every problem found in an order payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

// OrderPayload is the raw order body. Pointers tell a missing or null
// field apart from a zero value.
type OrderPayload struct {
	Products    *[]OrderLinePayload `json:"products"`
	FirstName   *string             `json:"firstname"`
	LastName    *string             `json:"lastname"`
	PhoneNumber *string             `json:"phonenumber"`
	Address     *string             `json:"address"`
}

type OrderLinePayload struct {
	Product  *int `json:"product"`
	Quantity *int `json:"quantity"`
}

const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
)

func checkText(errs *ValidationError, field string, value *string, maxLen int) string {
	if value == nil {
		errs.add(field, msgRequired)
		return ""
	}
	text := strings.TrimSpace(*value)
	if text == "" {
		errs.add(field, msgBlank)
		return ""
	}
	if utf8.RuneCountInString(text) > maxLen {
		errs.add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen))
		return ""
	}
	return text
}

// NormalizePhone parses raw for the given default region and returns the
// number in E.164 form.
func NormalizePhone(raw, region string) (string, error) {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", errors.New("invalid phone number")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func checkLines(errs *ValidationError, lines *[]OrderLinePayload) []int {
	if lines == nil {
		errs.add("products", msgRequired)
		return nil
	}
	if len(*lines) == 0 {
		errs.add("products", "This list may not be empty.")
		return nil
	}

	ids := make([]int, 0, len(*lines))
	for i, line := range *lines {
		field := fmt.Sprintf("products[%d]", i)
		switch {
		case line.Product == nil:
			errs.add(field+".product", msgRequired)
		case line.Quantity == nil:
			errs.add(field+".quantity", msgRequired)
		case *line.Quantity < 1:
			errs.add(field+".quantity", "Ensure this value is greater than or equal to 1.")
		case *line.Quantity > math.MaxInt32:
			errs.add(field+".quantity", fmt.Sprintf("Ensure this value is less than or equal to %d.", math.MaxInt32))
		default:
			ids = append(ids, *line.Product)
		}
	}
	return ids
}
