package repositories

import (
	"github.com/lumagram/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) (bool, error)
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint, limit int) ([]models.User, error)
	GetFollowing(userID uint, limit int) ([]models.User, error)
	GetFollowingIDs(userID uint) ([]uint, error)
	ReconcileCounts(userID uint) error
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the follow edge and bumps both users' counters in one
// transaction. The unique index on (follower_id, following_id) rejects a
// second edge for the same pair.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	if follow.Status == "" {
		follow.Status = models.FollowStatusAccepted
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(follow).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", follow.FollowerID).
			UpdateColumn("following_count", gorm.Expr("following_count + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", follow.FollowingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + ?", 1)).Error
	})
}

// DeleteFollow removes the follow edge and decrements both counters in one
// transaction; returns whether an edge was removed
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) (bool, error) {
	deleted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		if err := tx.Model(&models.User{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count - ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - ?", 1)).Error
	})
	return deleted, err
}

// IsFollowing reports whether followerID follows followingID
func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers returns the users following userID
func (r *PostgresFollowRepository) GetFollowers(userID uint, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("follower_id").Where("following_id = ?", userID),
	).Limit(limit).Find(&users).Error
	return users, err
}

// GetFollowing returns the users userID follows
func (r *PostgresFollowRepository) GetFollowing(userID uint, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID),
	).Limit(limit).Find(&users).Error
	return users, err
}

// GetFollowingIDs returns the IDs of the users userID follows
func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}

// ReconcileCounts recomputes a user's follower/following counters from the
// actual edge rows, repairing any drift
func (r *PostgresFollowRepository) ReconcileCounts(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var followers, following int64
		if err := tx.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&followers).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&following).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumns(map[string]interface{}{
				"followers_count": followers,
				"following_count": following,
			}).Error
	})
}
