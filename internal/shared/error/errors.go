package error

import (
	"errors"
	"net/http"
)

type DomainError interface {
	error // Embed standard error interface
	Info() string
}

type domainSentinel struct {
	errInfo string
}

func (e *domainSentinel) Error() string {
	return e.errInfo
}

func (e *domainSentinel) Info() string {
	return e.errInfo
}

// ErrorResponse is the body of every error reply, always wrapped as {"error": ErrorResponse}
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"` // client message
}

// Envelope is the JSON wire shape of an error reply
type Envelope struct {
	Error ErrorResponse `json:"error"`
}

// Wrap returns the envelope for resp
func Wrap(resp ErrorResponse) Envelope {
	return Envelope{Error: resp}
}

// WithMessage copies resp with a different client message
func (r ErrorResponse) WithMessage(message string) ErrorResponse {
	r.Message = message
	return r
}

// Common errors
var (
	domainErrorResponses = map[string]ErrorResponse{}

	// ValidationFailed indicates the request payload failed validation
	ValidationFailed = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-001", // METHOD_ARGUMENT_NOT_VALID
		Message: "The request is invalid.",
	}

	// InvalidRequest indicates the request format is invalid (e.g., JSON parsing error)
	InvalidRequest = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-002", // INVALID_REQUEST
		Message: "The request format is invalid.",
	}

	// InternalServerError indicates an unexpected server error
	InternalServerError = ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "ERROR-003", // INTERNAL_SERVER_ERROR
		Message: "An internal server error occurred.",
	}

	Unauthorized = ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "ERROR-004",
		Message: "Authentication is required.",
	}

	Forbidden = ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "ERROR-005",
		Message: "You do not have permission to perform this action.",
	}

	NotFound = ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "ERROR-006",
		Message: "The requested resource was not found.",
	}

	TooManyRequests = ErrorResponse{
		Status:  http.StatusTooManyRequests,
		Code:    "ERROR-007",
		Message: "Too many requests. Please try again later.",
	}

	PayloadTooLarge = ErrorResponse{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "ERROR-008",
		Message: "The uploaded payload is too large.",
	}

	RequestTimeout = ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "ERROR-009",
		Message: "The request took too long. Please try again.",
	}
)

// NewDomainError creates a sentinel error that can participate in error chains.
func NewDomainError(errInfo string) DomainError {
	return &domainSentinel{errInfo: errInfo}
}

// RegisterDomainErrorResponse registers a mapping between a domain error errInfo and a shared error response.
func RegisterDomainErrorResponse(errInfo string, resp ErrorResponse) {
	domainErrorResponses[errInfo] = resp
}

// ResolveDomainError converts a domain error into a shared error response if a mapping exists.
func ResolveDomainError(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}

	var domainErr DomainError
	if errors.As(err, &domainErr) {
		if resp, ok := domainErrorResponses[domainErr.Info()]; ok {
			return resp, true
		}
	}
	return ErrorResponse{}, false
}
