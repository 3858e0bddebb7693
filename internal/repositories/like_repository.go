package repositories

import (
	"github.com/lumagram/backend/internal/models"
	"gorm.io/gorm"
)

// LikeWithUser is a like joined with the liking user's compact profile
type LikeWithUser struct {
	models.Like
	User models.UserCompact `json:"user"`
}

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	LikePost(userID, postID uint) (*models.Like, error)
	UnlikePost(userID, postID uint) (bool, error)
	IsPostLiked(userID, postID uint) (bool, error)
	GetPostLikes(postID uint, limit int) ([]LikeWithUser, error)
	GetLikedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// LikePost inserts the like edge and bumps the post's like count in one
// transaction. The unique index on (user_id, post_id) rejects a second like.
func (r *PostgresLikeRepository) LikePost(userID, postID uint) (*models.Like, error) {
	like := &models.Like{UserID: userID, PostID: postID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return like, nil
}

// UnlikePost removes the like edge and decrements the post's like count in
// one transaction; returns whether an edge was removed
func (r *PostgresLikeRepository) UnlikePost(userID, postID uint) (bool, error) {
	deleted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
	})
	return deleted, err
}

// IsPostLiked reports whether the user has liked the post
func (r *PostgresLikeRepository) IsPostLiked(userID, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetPostLikes returns the likes on a post together with the liking users
func (r *PostgresLikeRepository) GetPostLikes(postID uint, limit int) ([]LikeWithUser, error) {
	var likes []models.Like
	if err := r.db.Where("post_id = ?", postID).Limit(limit).Find(&likes).Error; err != nil {
		return nil, err
	}

	result := make([]LikeWithUser, len(likes))
	for i, l := range likes {
		result[i] = LikeWithUser{Like: l}
		var user models.User
		if err := r.db.First(&user, l.UserID).Error; err == nil {
			result[i].User = user.ToCompact()
		}
	}
	return result, nil
}

// GetLikedPostIDs returns which of the given posts the user has liked
func (r *PostgresLikeRepository) GetLikedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var likes []models.Like
	err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.PostID] = true
	}
	return result, nil
}
