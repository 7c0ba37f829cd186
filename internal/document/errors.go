package document

import (
	"net/http"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
)

const (
	documentNotFound  = "DOCUMENT_NOT_FOUND"
	documentForbidden = "DOCUMENT_FORBIDDEN"
	emptyFile         = "DOCUMENT_EMPTY_FILE"
	contentMissing    = "DOCUMENT_CONTENT_MISSING"
)

var (
	ErrDocumentNotFound  = sharedError.NewDomainError(documentNotFound)
	ErrDocumentForbidden = sharedError.NewDomainError(documentForbidden)
	ErrEmptyFile         = sharedError.NewDomainError(emptyFile)
	ErrContentMissing    = sharedError.NewDomainError(contentMissing)
)

func init() {
	sharedError.RegisterDomainErrorResponse(documentNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "DOCUMENT-001",
		Message: "Document not found.",
	})
	sharedError.RegisterDomainErrorResponse(documentForbidden, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "DOCUMENT-002",
		Message: "Only the uploader or an admin can delete this document.",
	})
	sharedError.RegisterDomainErrorResponse(emptyFile, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "DOCUMENT-003",
		Message: "No file was uploaded.",
	})
	sharedError.RegisterDomainErrorResponse(contentMissing, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "DOCUMENT-004",
		Message: "Document content is no longer available.",
	})
}
