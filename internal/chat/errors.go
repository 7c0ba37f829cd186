package chat

import (
	"net/http"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
)

const (
	conversationNotFound = "CONVERSATION_NOT_FOUND"
	notParticipant       = "CONVERSATION_NOT_PARTICIPANT"
	unknownParticipant   = "CONVERSATION_UNKNOWN_PARTICIPANT"
)

var (
	ErrConversationNotFound = sharedError.NewDomainError(conversationNotFound)
	ErrNotParticipant       = sharedError.NewDomainError(notParticipant)
	ErrUnknownParticipant   = sharedError.NewDomainError(unknownParticipant)
)

func init() {
	sharedError.RegisterDomainErrorResponse(conversationNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "CHAT-001",
		Message: "Conversation not found.",
	})
	sharedError.RegisterDomainErrorResponse(notParticipant, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "CHAT-002",
		Message: "You are not a participant in this conversation.",
	})
	sharedError.RegisterDomainErrorResponse(unknownParticipant, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "CHAT-003",
		Message: "One or more participants do not exist.",
	})
}
