// Package web defines common components for a web application.
package web

import (
	"errors"
	"fmt"

	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a human readable message for the failed validation.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "number", "numeric":
		return fe.Field() + " must be a number"
	case "account_type":
		return fe.Field() + " is not supported"
	}

	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}

// BindingErrorMsg returns the message for the first failed validation of a
// request binding error.
func BindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return GetErrorMsg(ve[0])
	}

	return errorspkg.ErrInvalidRequest.Error()
}
