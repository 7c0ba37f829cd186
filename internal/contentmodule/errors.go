package contentmodule

import (
	"net/http"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
)

const (
	moduleNotFound     = "MODULE_NOT_FOUND"
	moduleInactive     = "MODULE_INACTIVE"
	alreadyBooked      = "MODULE_ALREADY_BOOKED"
	moduleFull         = "MODULE_FULL"
	notBooked          = "MODULE_NOT_BOOKED"
	limitBelowBookings = "MODULE_LIMIT_BELOW_BOOKINGS"
)

var (
	ErrModuleNotFound     = sharedError.NewDomainError(moduleNotFound)
	ErrModuleInactive     = sharedError.NewDomainError(moduleInactive)
	ErrAlreadyBooked      = sharedError.NewDomainError(alreadyBooked)
	ErrModuleFull         = sharedError.NewDomainError(moduleFull)
	ErrNotBooked          = sharedError.NewDomainError(notBooked)
	ErrLimitBelowBookings = sharedError.NewDomainError(limitBelowBookings)
)

func init() {
	sharedError.RegisterDomainErrorResponse(moduleNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MODULE-001",
		Message: "Module not found.",
	})
	sharedError.RegisterDomainErrorResponse(moduleInactive, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MODULE-002",
		Message: "Module is not open for booking.",
	})
	sharedError.RegisterDomainErrorResponse(alreadyBooked, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MODULE-003",
		Message: "Module already booked.",
	})
	sharedError.RegisterDomainErrorResponse(moduleFull, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MODULE-004",
		Message: "Module is fully booked.",
	})
	sharedError.RegisterDomainErrorResponse(notBooked, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MODULE-005",
		Message: "Module is not booked.",
	})
	sharedError.RegisterDomainErrorResponse(limitBelowBookings, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MODULE-006",
		Message: "Max bookings cannot be lower than the current number of bookings.",
	})
}
