package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EngagementEvent is the append-only audit trail of tracked engagement:
// one row per event with the readiness/phase the user landed on afterwards.
type EngagementEvent struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Action         string         `gorm:"not null;column:action;index" json:"action"`
	Payload        datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload"`
	ReadinessAfter float64        `gorm:"not null;column:readiness_after" json:"readiness_after"`
	PhaseAfter     string         `gorm:"not null;column:phase_after" json:"phase_after"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
}

func (EngagementEvent) TableName() string {
	return "engagement_event"
}
