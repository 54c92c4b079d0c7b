package models

import (
	"time"

	"lakshmi/internal/uuid"

	"gorm.io/gorm"
)

// MessageSender identifies who authored a chat message.
type MessageSender string

const (
	SenderUser MessageSender = "user"
	SenderAI   MessageSender = "ai"
)

// Chat is a conversation between a user and the assistant. Messages are
// contained, not referenced: deleting a chat removes its messages.
type Chat struct {
	Base
	UserID   string        `gorm:"type:uuid;index;not null" json:"user_id"`
	Title    string        `json:"title"`
	Messages []ChatMessage `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"messages"`
}

// ChatMessage is a single message within a chat. Position is the message's
// place in the conversation; insertion order is preserved across edits.
type ChatMessage struct {
	ID        string        `gorm:"type:uuid;primaryKey" json:"id"`
	ChatID    string        `gorm:"type:uuid;index;not null" json:"-"`
	Sender    MessageSender `gorm:"not null" json:"sender"`
	Text      string        `gorm:"not null" json:"text"`
	Edited    bool          `gorm:"default:false" json:"edited,omitempty"`
	Position  int           `gorm:"not null" json:"-"`
	Timestamp time.Time     `gorm:"not null" json:"timestamp"`
}

// BeforeCreate generates a UUIDv7 and stamps the message time.
func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return nil
}
