package auth

import (
	"net/http"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
)

const (
	invalidCredentials  = "INVALID_CREDENTIALS"
	accountInactive     = "ACCOUNT_INACTIVE"
	invalidRefreshToken = "INVALID_REFRESH_TOKEN"
	tooManyAttempts     = "TOO_MANY_LOGIN_ATTEMPTS"
)

var (
	ErrInvalidCredentials  = sharedError.NewDomainError(invalidCredentials)
	ErrAccountInactive     = sharedError.NewDomainError(accountInactive)
	ErrInvalidRefreshToken = sharedError.NewDomainError(invalidRefreshToken)
	ErrTooManyAttempts     = sharedError.NewDomainError(tooManyAttempts)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidCredentials, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-003",
		Message: "Invalid email or password.",
	})
	sharedError.RegisterDomainErrorResponse(accountInactive, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-004",
		Message: "This account has been deactivated.",
	})
	sharedError.RegisterDomainErrorResponse(invalidRefreshToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-005",
		Message: "Invalid refresh token.",
	})
	sharedError.RegisterDomainErrorResponse(tooManyAttempts, sharedError.ErrorResponse{
		Status:  http.StatusTooManyRequests,
		Code:    "AUTH-006",
		Message: "Too many failed login attempts. Try again later.",
	})
}
