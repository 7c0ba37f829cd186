package model

import "time"

// Connection is a community post signaling a need or an offer
type Connection struct {
	BaseEntity

	Title       string  `gorm:"column:title;size:200;not null"`
	Description string  `gorm:"column:description;size:4000"`
	IsNeed      bool    `gorm:"column:is_need;not null;index"`
	CreatedByID uint32  `gorm:"column:created_by_id;not null;index"`
	CreatedBy   *Member `gorm:"foreignKey:CreatedByID"`
}

func (*Connection) TableName() string {
	return "community_connection"
}

type Conversation struct {
	BaseEntity

	Title string `gorm:"column:title;size:200"`

	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID"`
}

func (*Conversation) TableName() string {
	return "conversation"
}

type ConversationParticipant struct {
	BaseEntity

	ConversationID uint32    `gorm:"column:conversation_id;not null;index:idx_participant_conversation_member"`
	MemberID       uint32    `gorm:"column:member_id;not null;index:idx_participant_conversation_member"`
	Member         *Member   `gorm:"foreignKey:MemberID"`
	JoinedAt       time.Time `gorm:"column:joined_at;not null"`
}

func (*ConversationParticipant) TableName() string {
	return "conversation_participant"
}

type ChatMessage struct {
	BaseEntity

	ConversationID uint32        `gorm:"column:conversation_id;not null;index"`
	Conversation   *Conversation `gorm:"foreignKey:ConversationID"`
	SenderID       uint32        `gorm:"column:sender_id;not null"`
	Sender         *Member       `gorm:"foreignKey:SenderID"`
	Content        string        `gorm:"column:content;size:4000;not null"`
	SentAt         time.Time     `gorm:"column:sent_at;not null;index"`
}

func (*ChatMessage) TableName() string {
	return "chat_message"
}

// MaxDocumentFileNameBytes bounds Document.FileName; oracle VARCHAR2 sizes count bytes
const MaxDocumentFileNameBytes = 255

// Document is the metadata of an uploaded file; the bytes live in the object store at StoragePath
type Document struct {
	BaseEntity

	Title        string    `gorm:"column:title;size:200;not null"`
	FileName     string    `gorm:"column:file_name;size:255;not null"`
	ContentType  string    `gorm:"column:content_type;size:100"`
	StoragePath  string    `gorm:"column:storage_path;size:500;not null"`
	Size         int64     `gorm:"column:size;not null"`
	UploadedAt   time.Time `gorm:"column:uploaded_at;not null;index"`
	UploadedByID uint32    `gorm:"column:uploaded_by_id;not null;index"`
	UploadedBy   *Member   `gorm:"foreignKey:UploadedByID"`
}

func (*Document) TableName() string {
	return "document"
}
