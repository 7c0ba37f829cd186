package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// phoneRegex accepts international numbers: optional leading +, digits, spaces, dashes, parentheses.
	// Examples: +44 20 7946 0958, 020-7946-0958, (020) 7946 0958
	phoneRegex = regexp.MustCompile(`^\+?[0-9(][0-9 ()\-]{5,18}[0-9]$`)
)

// ValidatePhone validates a phone number. Empty values pass; combine with required when mandatory.
func ValidatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if phone == "" {
		return true
	}
	return phoneRegex.MatchString(phone)
}
