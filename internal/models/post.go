package models

import "time"

// MediaItem is a single media attachment on a post or message
type MediaItem struct {
	URL    string `json:"url" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=image video"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Post represents a social media post
type Post struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	AuthorID     uint        `json:"author_id" gorm:"index"`
	Author       User        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Caption      string      `json:"caption"`
	Media        []MediaItem `json:"media" gorm:"serializer:json"`
	Hashtags     []string    `json:"hashtags,omitempty" gorm:"serializer:json"`
	Mentions     []string    `json:"mentions,omitempty" gorm:"serializer:json"`
	Location     string      `json:"location,omitempty"`
	LikeCount    int         `json:"like_count" gorm:"default:0"`
	CommentCount int         `json:"comment_count" gorm:"default:0"`
	CreatedAt    time.Time   `json:"created_at" gorm:"index"`
}

// PostWithAuthor is a post enriched with its author's compact profile
type PostWithAuthor struct {
	Post
	AuthorProfile UserCompact `json:"author"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Caption  string      `json:"caption" validate:"omitempty,max=2200"`
	Media    []MediaItem `json:"media" validate:"required,min=1,max=10,dive"`
	Hashtags []string    `json:"hashtags,omitempty"`
	Mentions []string    `json:"mentions,omitempty"`
	Location string      `json:"location,omitempty" validate:"omitempty,max=100"`
}
