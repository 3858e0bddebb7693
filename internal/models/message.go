package models

import "time"

// Message belongs to a conversation and a sender; SeenBy is populated from
// message_reads rows, one per user who has seen the message.
type Message struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	ConversationID uint         `json:"conversation_id" gorm:"index"`
	Conversation   Conversation `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SenderID       uint         `json:"sender_id" gorm:"index"`
	Text           string       `json:"text,omitempty"`
	Media          []MediaItem  `json:"media,omitempty" gorm:"serializer:json"`
	SeenBy         []uint       `json:"seen_by" gorm:"-"`
	CreatedAt      time.Time    `json:"created_at" gorm:"index"`
}

// MessageRead records that a user has seen a message; the unique pair index
// makes marking idempotent.
type MessageRead struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MessageID uint      `json:"message_id" gorm:"index;uniqueIndex:idx_message_user_read"`
	Message   Message   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_message_user_read"`
	SeenAt    time.Time `json:"seen_at"`
}

// MessageWithSender is a message enriched with the sender's compact profile
type MessageWithSender struct {
	Message
	Sender UserCompact `json:"sender"`
}

// CreateMessageRequest defines the request body for sending a message
type CreateMessageRequest struct {
	Text  string      `json:"text" validate:"required_without=Media,omitempty,max=2000"`
	Media []MediaItem `json:"media,omitempty" validate:"omitempty,max=10,dive"`
}
