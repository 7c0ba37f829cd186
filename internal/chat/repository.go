package chat

import (
	"context"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

type ConversationRepository struct {
	*repository.Repository[model.Conversation]
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{Repository: repository.New[model.Conversation]()}
}

func (r *ConversationRepository) FindByMember(ctx context.Context, db *gorm.DB, memberID uint32) ([]model.Conversation, error) {
	return r.FindAll(ctx, db,
		repository.Where("id IN (SELECT conversation_id FROM conversation_participant WHERE member_id = ? AND deleted_at IS NULL)", memberID),
		repository.Preload("Participants", orderParticipants),
	)
}

func (r *ConversationRepository) FindWithParticipants(ctx context.Context, db *gorm.DB, id uint32) (*model.Conversation, error) {
	return r.FindByID(ctx, db, id, repository.Preload("Participants", orderParticipants))
}

func orderParticipants(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

type ParticipantRepository struct {
	*repository.Repository[model.ConversationParticipant]
}

func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{Repository: repository.New[model.ConversationParticipant]()}
}

func (r *ParticipantRepository) IsParticipant(ctx context.Context, db *gorm.DB, conversationID, memberID uint32) (bool, error) {
	return r.Exists(ctx, db, repository.Where("conversation_id = ? AND member_id = ?", conversationID, memberID))
}

type MessageRepository struct {
	*repository.Repository[model.ChatMessage]
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{Repository: repository.New[model.ChatMessage]()}
}

// FindByConversation lists newest first
func (r *MessageRepository) FindByConversation(ctx context.Context, db *gorm.DB, conversationID uint32) ([]model.ChatMessage, error) {
	return r.FindAll(ctx, db,
		repository.Where("conversation_id = ?", conversationID),
		repository.OrderBy("sent_at DESC, id DESC"),
	)
}

// FindLatest returns the newest message of each conversation keyed by conversation id
func (r *MessageRepository) FindLatest(ctx context.Context, db *gorm.DB, conversationIDs []uint32) (map[uint32]*model.ChatMessage, error) {
	latest := make(map[uint32]*model.ChatMessage, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return latest, nil
	}

	messages, err := r.FindAll(ctx, db, repository.Where(
		"id IN (SELECT MAX(id) FROM chat_message WHERE conversation_id IN ? AND deleted_at IS NULL GROUP BY conversation_id)",
		conversationIDs,
	))
	if err != nil {
		return nil, err
	}
	for i := range messages {
		latest[messages[i].ConversationID] = &messages[i]
	}
	return latest, nil
}
