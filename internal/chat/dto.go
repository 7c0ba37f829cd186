package chat

import (
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
)

type MessageResponse struct {
	ID             uint32    `json:"id"`
	ConversationID uint32    `json:"conversationId"`
	SenderID       uint32    `json:"senderId"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sentAt"`
}

func toMessageResponse(m *model.ChatMessage) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		SentAt:         m.SentAt,
	}
}

type ConversationResponse struct {
	ID             uint32           `json:"id"`
	Title          string           `json:"title"`
	ParticipantIDs []uint32         `json:"participantIds"`
	CreatedAt      time.Time        `json:"createdAt"`
	LastMessage    *MessageResponse `json:"lastMessage"`
}

// lastActivity orders conversations: latest message, else creation time
func (c ConversationResponse) lastActivity() time.Time {
	if c.LastMessage != nil {
		return c.LastMessage.SentAt
	}
	return c.CreatedAt
}

func toConversationResponse(c *model.Conversation, last *model.ChatMessage) ConversationResponse {
	ids := make([]uint32, 0, len(c.Participants))
	for _, p := range c.Participants {
		ids = append(ids, p.MemberID)
	}
	resp := ConversationResponse{
		ID:             c.ID,
		Title:          c.Title,
		ParticipantIDs: ids,
		CreatedAt:      c.CreatedAt,
	}
	if last != nil {
		msg := toMessageResponse(last)
		resp.LastMessage = &msg
	}
	return resp
}

type CreateConversationRequest struct {
	Title          string   `json:"title" binding:"max=200"`
	ParticipantIDs []uint32 `json:"participantIds" binding:"required,min=1,max=50,dive,gt=0"`
}

type SendMessageRequest struct {
	ConversationID uint32 `json:"conversationId" binding:"required,gt=0"`
	Content        string `json:"content" binding:"required,max=4000"`
}
