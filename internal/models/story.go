package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story represents a user's story stored in MongoDB; it expires 24 hours
// after creation.
type Story struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	Media     StoryMedia         `json:"media" bson:"media"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// StoryMedia is the single media item of a story
type StoryMedia struct {
	ItemID string `json:"item_id" bson:"item_id"`
	URL    string `json:"url" bson:"url"`
	Type   string `json:"type" bson:"type"` // "image" or "video"
}

// StoryView tracks which stories a user has viewed (PostgreSQL)
type StoryView struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	StoryID string    `json:"story_id" gorm:"index;uniqueIndex:idx_story_user_view;size:24"`
	UserID  uint      `json:"user_id" gorm:"index;uniqueIndex:idx_story_user_view"`
	SeenAt  time.Time `json:"seen_at"`
}

// StoryWithAuthor is a story enriched with author profile and view state
type StoryWithAuthor struct {
	Story
	Author UserCompact `json:"author"`
	IsSeen bool        `json:"is_seen"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	MediaURL string `json:"media_url" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=image video"`
}
