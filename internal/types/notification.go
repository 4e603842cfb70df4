package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationJoinRequest     = "join_request"
	NotificationRequestAccepted = "request_accepted"
	NotificationRequestRejected = "request_rejected"
)

type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Recipient   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipientID;references:ID" json:"recipient,omitempty"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Sender      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:SenderID;references:ID" json:"sender,omitempty"`
	EventID     uuid.UUID `gorm:"type:uuid;not null" json:"event_id"`
	Event       *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`
	Type        string    `gorm:"not null;column:type" json:"type"`
	Message     string    `gorm:"not null;column:message" json:"message"`
	Read        bool      `gorm:"not null;default:false;column:read" json:"read"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Notification) TableName() string {
	return "notification"
}
