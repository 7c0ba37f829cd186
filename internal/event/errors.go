package event

import (
	"net/http"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
)

const (
	eventNotFound        = "EVENT_NOT_FOUND"
	eventCancelled       = "EVENT_CANCELLED"
	alreadyRegistered    = "EVENT_ALREADY_REGISTERED"
	eventFull            = "EVENT_FULL"
	notRegistered        = "EVENT_NOT_REGISTERED"
	invalidEventSchedule = "EVENT_INVALID_SCHEDULE"
	capacityBelowCount   = "EVENT_CAPACITY_BELOW_ATTENDEES"
)

var (
	ErrEventNotFound        = sharedError.NewDomainError(eventNotFound)
	ErrEventCancelled       = sharedError.NewDomainError(eventCancelled)
	ErrAlreadyRegistered    = sharedError.NewDomainError(alreadyRegistered)
	ErrEventFull            = sharedError.NewDomainError(eventFull)
	ErrNotRegistered        = sharedError.NewDomainError(notRegistered)
	ErrInvalidEventSchedule = sharedError.NewDomainError(invalidEventSchedule)
	ErrCapacityBelowCount   = sharedError.NewDomainError(capacityBelowCount)
)

func init() {
	sharedError.RegisterDomainErrorResponse(eventNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "EVENT-001",
		Message: "Event not found.",
	})
	sharedError.RegisterDomainErrorResponse(eventCancelled, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "EVENT-002",
		Message: "Event has been cancelled.",
	})
	sharedError.RegisterDomainErrorResponse(alreadyRegistered, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "EVENT-003",
		Message: "Already registered for this event.",
	})
	sharedError.RegisterDomainErrorResponse(eventFull, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "EVENT-004",
		Message: "Event is full.",
	})
	sharedError.RegisterDomainErrorResponse(notRegistered, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "EVENT-005",
		Message: "Not registered for this event.",
	})
	sharedError.RegisterDomainErrorResponse(invalidEventSchedule, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "EVENT-006",
		Message: "End date must not be before start date.",
	})
	sharedError.RegisterDomainErrorResponse(capacityBelowCount, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "EVENT-007",
		Message: "Max attendees cannot be lower than the current number of attendees.",
	})
}
