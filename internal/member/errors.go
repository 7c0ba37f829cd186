package member

import (
	"net/http"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
)

const (
	memberAlreadyExists = "MEMBER_ALREADY_EXISTS" // errInfo
	memberNotFound      = "MEMBER_NOT_FOUND"      // errInfo
	benefitNotFound     = "BENEFIT_NOT_FOUND"
	benefitAlreadyUsed  = "BENEFIT_ALREADY_USED"
)

var (
	ErrMemberAlreadyExists = sharedError.NewDomainError(memberAlreadyExists)
	ErrMemberNotFound      = sharedError.NewDomainError(memberNotFound)
	ErrBenefitNotFound     = sharedError.NewDomainError(benefitNotFound)
	ErrBenefitAlreadyUsed  = sharedError.NewDomainError(benefitAlreadyUsed)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "Member not found.",
	})

	sharedError.RegisterDomainErrorResponse(memberAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "A user with this email already exists.",
	})

	sharedError.RegisterDomainErrorResponse(benefitNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-003",
		Message: "Benefit not found.",
	})

	sharedError.RegisterDomainErrorResponse(benefitAlreadyUsed, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-004",
		Message: "Benefit has already been used.",
	})
}
