package chat

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

type ChatService struct {
	db                     *gorm.DB
	conversationRepository *ConversationRepository
	participantRepository  *ParticipantRepository
	messageRepository      *MessageRepository
	now                    func() time.Time
}

func NewChatService(db *gorm.DB, conversationRepository *ConversationRepository, participantRepository *ParticipantRepository, messageRepository *MessageRepository) *ChatService {
	return &ChatService{
		db:                     db,
		conversationRepository: conversationRepository,
		participantRepository:  participantRepository,
		messageRepository:      messageRepository,
		now:                    time.Now,
	}
}

// Conversations lists the member's conversations, most recently active first
func (s *ChatService) Conversations(ctx context.Context, memberID uint32) ([]ConversationResponse, error) {
	conversations, err := s.conversationRepository.FindByMember(ctx, s.db, memberID)
	if err != nil {
		return nil, fmt.Errorf("find conversations: %w", err)
	}

	ids := make([]uint32, 0, len(conversations))
	for i := range conversations {
		ids = append(ids, conversations[i].ID)
	}
	latest, err := s.messageRepository.FindLatest(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("find latest messages: %w", err)
	}

	out := make([]ConversationResponse, 0, len(conversations))
	for i := range conversations {
		out = append(out, toConversationResponse(&conversations[i], latest[conversations[i].ID]))
	}
	slices.SortStableFunc(out, func(a, b ConversationResponse) int {
		return b.lastActivity().Compare(a.lastActivity())
	})
	return out, nil
}

// CreateConversation always includes the creator among the participants
func (s *ChatService) CreateConversation(ctx context.Context, memberID uint32, req *CreateConversationRequest) (*ConversationResponse, error) {
	participants := []uint32{memberID}
	for _, id := range req.ParticipantIDs {
		if !slices.Contains(participants, id) {
			participants = append(participants, id)
		}
	}

	var conversation *model.Conversation
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var known int64
		if err := tx.WithContext(ctx).Model(&model.Member{}).Where("id IN ?", participants).Count(&known).Error; err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		if known != int64(len(participants)) {
			return fmt.Errorf("%d of %d participants exist: %w", known, len(participants), ErrUnknownParticipant)
		}

		joinedAt := s.now().UTC()
		conversation = &model.Conversation{Title: req.Title}
		for _, id := range participants {
			conversation.Participants = append(conversation.Participants, model.ConversationParticipant{
				MemberID: id,
				JoinedAt: joinedAt,
			})
		}
		if err := s.conversationRepository.Create(ctx, tx, conversation); err != nil {
			return fmt.Errorf("create conversation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Conversation created", "conversation_id", conversation.ID, "participants", len(participants))
	resp := toConversationResponse(conversation, nil)
	return &resp, nil
}

// authorize returns ErrConversationNotFound before ErrNotParticipant
func (s *ChatService) authorize(ctx context.Context, conversationID, memberID uint32) (*model.Conversation, error) {
	conversation, err := s.conversationRepository.FindWithParticipants(ctx, s.db, conversationID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("conversation id=%d: %w", conversationID, ErrConversationNotFound)
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}

	for _, p := range conversation.Participants {
		if p.MemberID == memberID {
			return conversation, nil
		}
	}
	logger.FromContext(ctx).Warn("Conversation access refused", "conversation_id", conversationID, "member_id", memberID)
	return nil, fmt.Errorf("conversation id=%d member id=%d: %w", conversationID, memberID, ErrNotParticipant)
}

func (s *ChatService) Conversation(ctx context.Context, conversationID, memberID uint32) (*ConversationResponse, error) {
	conversation, err := s.authorize(ctx, conversationID, memberID)
	if err != nil {
		return nil, err
	}

	latest, err := s.messageRepository.FindLatest(ctx, s.db, []uint32{conversationID})
	if err != nil {
		return nil, fmt.Errorf("find latest message: %w", err)
	}
	resp := toConversationResponse(conversation, latest[conversationID])
	return &resp, nil
}

func (s *ChatService) Messages(ctx context.Context, conversationID, memberID uint32) ([]MessageResponse, error) {
	if _, err := s.authorize(ctx, conversationID, memberID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepository.FindByConversation(ctx, s.db, conversationID)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, toMessageResponse(&messages[i]))
	}
	return out, nil
}

func (s *ChatService) Send(ctx context.Context, memberID uint32, req *SendMessageRequest) (*MessageResponse, error) {
	if _, err := s.authorize(ctx, req.ConversationID, memberID); err != nil {
		return nil, err
	}

	message := &model.ChatMessage{
		ConversationID: req.ConversationID,
		SenderID:       memberID,
		Content:        req.Content,
		SentAt:         s.now().UTC(),
	}
	if err := s.messageRepository.Create(ctx, s.db, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	resp := toMessageResponse(message)
	return &resp, nil
}
