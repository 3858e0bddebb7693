package models

import "time"

// Save represents a bookmarked post
type Save struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_save"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_save"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedPost is a save joined with the saved post and its author
type SavedPost struct {
	Save
	Post PostWithAuthor `json:"post"`
}
