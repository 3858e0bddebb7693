package models

import "time"

// Conversation is a direct-message thread between a fixed set of participants.
// ParticipantKey is the sorted participant ID list joined with ":"; the unique
// index on it guarantees at most one conversation per participant set even
// under concurrent find-or-create calls.
type Conversation struct {
	ID             uint                      `json:"id" gorm:"primaryKey"`
	ParticipantKey string                    `json:"-" gorm:"uniqueIndex;size:255"`
	Participants   []ConversationParticipant `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ParticipantIDs []uint                    `json:"participant_ids" gorm:"-"`
	LastMessageID  *uint                     `json:"last_message_id,omitempty"`
	UpdatedAt      time.Time                 `json:"updated_at" gorm:"index"`
	CreatedAt      time.Time                 `json:"created_at"`
}

// ConversationParticipant is a membership row of a conversation
type ConversationParticipant struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	ConversationID uint `json:"conversation_id" gorm:"index;uniqueIndex:idx_conversation_user"`
	UserID         uint `json:"user_id" gorm:"index;uniqueIndex:idx_conversation_user"`
}

// ConversationWithLastMessage is a conversation enriched with its latest message
type ConversationWithLastMessage struct {
	Conversation
	LastMessage *Message `json:"last_message,omitempty"`
}

// CreateConversationRequest defines the request body for opening a conversation
type CreateConversationRequest struct {
	ParticipantIDs []uint `json:"participant_ids" validate:"required,min=1,dive,gt=0"`
}
