package connection

import (
	"net/http"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
)

const (
	connectionNotFound = "CONNECTION_NOT_FOUND"
	notConnectionOwner = "CONNECTION_NOT_OWNER"
)

var (
	ErrConnectionNotFound = sharedError.NewDomainError(connectionNotFound)
	ErrNotOwner           = sharedError.NewDomainError(notConnectionOwner)
)

func init() {
	sharedError.RegisterDomainErrorResponse(connectionNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "CONNECTION-001",
		Message: "Connection not found.",
	})
	sharedError.RegisterDomainErrorResponse(notConnectionOwner, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "CONNECTION-002",
		Message: "Only the creator can change this connection.",
	})
}
