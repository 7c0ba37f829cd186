package validator

import (
	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/go-playground/validator/v10"
)

// ValidateMembershipType accepts model.MembershipType names (Basic, Premium, ...)
func ValidateMembershipType(fl validator.FieldLevel) bool {
	return model.MembershipType(fl.Field().String()).Valid()
}

func ValidateMembershipStatus(fl validator.FieldLevel) bool {
	return model.MembershipStatus(fl.Field().String()).Valid()
}

// ValidateInterest applies to a single value; use dive for slices
func ValidateInterest(fl validator.FieldLevel) bool {
	return model.InterestType(fl.Field().String()).Valid()
}

func ValidateModuleStatus(fl validator.FieldLevel) bool {
	return model.ModuleCompletionStatus(fl.Field().String()).Valid()
}
