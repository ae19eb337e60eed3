package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Engagement event types.
const (
	EngagementImpression = "impression"
	EngagementAction     = "action"
	EngagementDismiss    = "dismiss"
)

// EngagementEvent is one widget interaction persisted for offline analysis
// of the personalization loop. Writes are best effort and never block or
// fail the user-facing path.
type EngagementEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id" json:"user_id"`
	SessionID string    `gorm:"column:session_id;not null" json:"session_id"`
	Page      string    `gorm:"column:page;not null" json:"page"`
	EventType string    `gorm:"column:event_type;not null" json:"event_type"`
	Token     string    `gorm:"column:token" json:"token"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Context datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
}

func (EngagementEvent) TableName() string {
	return "engagement_events"
}
