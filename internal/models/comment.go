package models

import "time"

// Comment represents a comment on a post, optionally replying to a parent comment
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Text      string    `json:"text"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	LikeCount int       `json:"like_count" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor is a comment enriched with its author's compact profile
type CommentWithAuthor struct {
	Comment
	AuthorProfile UserCompact `json:"author"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id,omitempty"`
}
