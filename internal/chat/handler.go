package chat

import (
	"net/http"

	sharedContext "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *ChatService
}

func NewChatHandler(chatService *ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func (h *ChatHandler) Conversations(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.chatService.Conversations(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ChatHandler) CreateConversation(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	var request CreateConversationRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.chatService.CreateConversation(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *ChatHandler) Conversation(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.chatService.Conversation(c.Request.Context(), id, memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ChatHandler) Messages(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.chatService.Messages(c.Request.Context(), id, memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ChatHandler) Send(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	var request SendMessageRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.chatService.Send(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}
