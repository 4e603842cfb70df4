package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Recommendation struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Type        string         `gorm:"not null;column:type" json:"type"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"not null;column:description" json:"description"`
	Likes       datatypes.JSON `gorm:"type:jsonb;column:likes;default:'[]'" json:"likes"`
	Dislikes    datatypes.JSON `gorm:"type:jsonb;column:dislikes;default:'[]'" json:"dislikes"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Recommendation) TableName() string {
	return "recommendation"
}
