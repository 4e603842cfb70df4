package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ContentTypeMessage        = "message"
	ContentTypeRecommendation = "recommendation"
	ContentTypeEvent          = "event"
	ContentTypeComment        = "comment"
)

const (
	FlagStatusPending       = "pending"
	FlagStatusReviewed      = "reviewed"
	FlagStatusRemoved       = "removed"
	FlagStatusFalsePositive = "false_positive"
)

// FlagReasonAutomated is the reason recorded by the toxicity gate; manual
// reports carry the reporter's own reason text.
const FlagReasonAutomated = "Automated toxicity detection"

type FlaggedContent struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ContentType     string     `gorm:"not null;column:content_type" json:"content_type"`
	ContentID       uuid.UUID  `gorm:"type:uuid;not null;column:content_id" json:"content_id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Reason          string     `gorm:"not null;column:reason" json:"reason"`
	ToxicityScore   float64    `gorm:"not null;default:0;column:toxicity_score" json:"toxicity_score"`
	Status          string     `gorm:"not null;default:'pending';column:status;index" json:"status"`
	ModeratorAction string     `gorm:"column:moderator_action" json:"moderator_action,omitempty"`
	ModeratorID     *uuid.UUID `gorm:"type:uuid;column:moderator_id" json:"moderator_id,omitempty"`
	FlaggedAt       time.Time  `gorm:"not null;column:flagged_at" json:"flagged_at"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
}

func (FlaggedContent) TableName() string {
	return "flagged_content"
}
