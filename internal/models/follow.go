package models

import "time"

// Follow status values. The pending state is declared for private-account
// follow requests; no approval transition exists yet and every follow is
// created accepted.
const (
	FollowStatusPending  = "pending"
	FollowStatusAccepted = "accepted"
)

// Follow represents a directed follower -> following relationship
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'accepted'"`
	CreatedAt   time.Time `json:"created_at"`
}
