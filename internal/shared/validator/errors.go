package validator

import (
	"errors"
	"fmt"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
	"github.com/go-playground/validator/v10"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	// 첫 번째 validation error만 반환 (사용자 친화적)
	fieldErr := validationErrors[0]
	resp := sharedError.ValidationFailed.WithMessage(getErrorMessage(fieldErr))
	return &resp, true
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return "Email format is invalid."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "gte", "gt", "lte", "lt":
		return fmt.Sprintf("%s is out of range.", fe.Field())
	case "gtefield", "gtfield":
		return fmt.Sprintf("%s must not be before %s.", fe.Field(), fe.Param())
	case "phone":
		return "Phone number format is invalid."
	case "membershiptype":
		return "Membership type must be one of Basic, Premium, Corporate, NonProfit, Lifetime."
	case "membershipstatus":
		return "Status must be one of Pending, Active, Suspended, Cancelled, Expired."
	case "interest":
		return "Interest is not a known interest type."
	case "bcryptlen":
		return fmt.Sprintf("%s is too long.", fe.Field())
	case "modulestatus":
		return "Status must be one of NotStarted, InProgress, Completed, Failed."
	default:
		return fmt.Sprintf("'%s' field is invalid.", fe.Field())
	}
}
