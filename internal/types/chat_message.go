package types

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessageMaxLen caps a single community chat message.
const ChatMessageMaxLen = 500

type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Message   string    `gorm:"not null;size:500;column:message" json:"message"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ChatMessage) TableName() string {
	return "chat_message"
}
