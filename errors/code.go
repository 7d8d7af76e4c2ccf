package errors

import (
	"net/http"
)

func BadRequest() ErrorEnricher    { return WithCode(http.StatusBadRequest) }
func NotFound() ErrorEnricher      { return WithCode(http.StatusNotFound) }
func Unprocessable() ErrorEnricher { return WithCode(http.StatusUnprocessableEntity) }

// CodeOf returns the code carried by err, DefaultCode if err does not carry
// one and 0 for a nil error.
func CodeOf(err error) int {
	if err == nil {
		return 0
	}

	if err, ok := err.(Error); ok {
		return err.Code()
	}
	return DefaultCode
}

// IsValidation reports whether err was raised because of a missing or
// malformed input field.
func IsValidation(err error) bool { return CodeOf(err) == http.StatusBadRequest }

// IsNotFound reports whether err addresses a record that does not exist.
func IsNotFound(err error) bool { return CodeOf(err) == http.StatusNotFound }

// IsUnknownTemplate reports whether err was raised for a template key that
// is not registered.
func IsUnknownTemplate(err error) bool { return CodeOf(err) == http.StatusUnprocessableEntity }
