package validator

import (
	"github.com/go-playground/validator/v10"
)

// bcryptMaxBytes is the input limit of bcrypt. max=72 counts runes, not bytes.
const bcryptMaxBytes = 72

// ValidateBcryptLength rejects passwords bcrypt would refuse to hash
func ValidateBcryptLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= bcryptMaxBytes
}
