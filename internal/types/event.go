package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EventStatusOpen      = "open"
	EventStatusFull      = "full"
	EventStatusCancelled = "cancelled"
)

type Event struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator             *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	Sport               string         `gorm:"not null;column:sport" json:"sport"`
	Title               string         `gorm:"not null;column:title" json:"title"`
	Description         string         `gorm:"not null;column:description" json:"description"`
	Date                time.Time      `gorm:"not null;column:date;index" json:"date"`
	DurationMinutes     int            `gorm:"not null;column:duration_minutes" json:"duration_minutes"`
	MaxParticipants     int            `gorm:"not null;column:max_participants" json:"max_participants"`
	CurrentParticipants int            `gorm:"not null;default:0;column:current_participants" json:"current_participants"`
	Location            string         `gorm:"not null;column:location" json:"location"`
	Status              string         `gorm:"not null;default:'open';column:status" json:"status"`
	Likes               datatypes.JSON `gorm:"type:jsonb;column:likes;default:'[]'" json:"likes"`
	Dislikes            datatypes.JSON `gorm:"type:jsonb;column:dislikes;default:'[]'" json:"dislikes"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null" json:"updated_at"`
}

func (Event) TableName() string {
	return "event"
}
