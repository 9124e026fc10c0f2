// Package forms validates raw form submissions before any mutation runs.
// Parsing is pure: the same values always produce the same result.
package forms

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
)

// Fixed user-facing messages shared across handlers.
const (
	MsgPayloadTooLarge = "Payload too large."
	MsgInvalidID       = "Invalid ID format"
)

// Errors maps a form field to its validation messages.
type Errors map[string][]string

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

var validate = validator.New()

func fieldErrors(err error) validator.ValidationErrors {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// PayloadTooLarge reports whether the URL-encoded size of the submission
// exceeds max bytes. It runs before any field validation.
func PayloadTooLarge(values url.Values, max int) bool {
	return len(values.Encode()) > max
}
