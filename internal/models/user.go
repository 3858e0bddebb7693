package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;size:30"`
	Email          string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password       string    `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Name           string    `json:"name"`
	Bio            string    `json:"bio"`
	Website        string    `json:"website"`
	Avatar         string    `json:"avatar"`
	IsPrivate      bool      `json:"is_private" gorm:"default:false"`
	FollowersCount int       `json:"followers_count" gorm:"default:0"`
	FollowingCount int       `json:"following_count" gorm:"default:0"`
	PostsCount     int       `json:"posts_count" gorm:"default:0"`
	FirebaseUID    *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	CreatedAt      time.Time `json:"created_at"`
}

// UserCompact is the projection embedded in feed items, likes and notifications
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// ToCompact returns the compact projection of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
	}
}

// RegisterRequest defines the request body for local registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=50"`
}

// SignInRequest defines the request body for local sign in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,max=50"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=160"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`
	Avatar    string `json:"avatar,omitempty"`
	IsPrivate *bool  `json:"is_private,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
