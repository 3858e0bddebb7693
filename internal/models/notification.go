package models

import "time"

// Notification type values
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
	NotificationTypeMention = "mention"
	NotificationTypeMessage = "message"
)

// Notification represents a user notification
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Type        string    `json:"type" gorm:"size:30;index"` // like, comment, follow, mention, message
	ActorID     uint      `json:"actor_id" gorm:"index"`
	EntityID    *uint     `json:"entity_id,omitempty"` // post ID, comment ID, conversation ID, etc.
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// NotificationWithActor is a notification enriched with the acting user's profile
type NotificationWithActor struct {
	Notification
	Actor UserCompact `json:"actor"`
}
