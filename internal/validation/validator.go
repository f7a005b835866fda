// Package validation provides custom validators for the application
package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Initialize registers all custom validators
func Initialize() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("numericcode", validateNumericCode)
		if err != nil {
			panic(err)
		}
	}
}

// validateNumericCode checks that a string is all digits. Codes are compared
// as strings, so leading zeros must survive the trip through the client.
func validateNumericCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
