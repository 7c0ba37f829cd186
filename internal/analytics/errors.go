package analytics

import (
	"net/http"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
)

const invalidDateRange = "ANALYTICS_INVALID_DATE_RANGE"

var ErrInvalidDateRange = sharedError.NewDomainError(invalidDateRange)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidDateRange, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ANALYTICS-001",
		Message: "End date must not be before start date and the range may span at most 366 days.",
	})
}
