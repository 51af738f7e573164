// Package accounttypepkg provides the supported account types.
package accounttypepkg

import "github.com/go-playground/validator/v10"

// Constants for all supported account types.
const (
	Savings = "Savings"
	Current = "Current"
)

// SupportedTypes holds all the supported account types.
var SupportedTypes = []string{
	Savings,
	Current,
}

// IsSupported returns true if the account type is supported.
func IsSupported(accountType string) bool {
	for _, t := range SupportedTypes {
		if t == accountType {
			return true
		}
	}

	return false
}

// ValidAccountType validates whether the account type is supported.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return IsSupported(t)
	}

	return false
}
