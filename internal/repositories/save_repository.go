package repositories

import (
	"github.com/lumagram/backend/internal/models"
	"gorm.io/gorm"
)

// SaveRepository defines the interface for saved-post data operations
type SaveRepository interface {
	SavePost(userID, postID uint) (*models.Save, error)
	UnsavePost(userID, postID uint) (bool, error)
	IsPostSaved(userID, postID uint) (bool, error)
	GetUserSavedPosts(userID uint, limit int) ([]models.SavedPost, error)
	GetSavedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresSaveRepository implements SaveRepository for PostgreSQL
type PostgresSaveRepository struct {
	db *gorm.DB
}

// NewPostgresSaveRepository creates a new PostgresSaveRepository
func NewPostgresSaveRepository(db *gorm.DB) *PostgresSaveRepository {
	return &PostgresSaveRepository{db: db}
}

// SavePost bookmarks a post; the unique index on (user_id, post_id) rejects
// a duplicate save
func (r *PostgresSaveRepository) SavePost(userID, postID uint) (*models.Save, error) {
	save := &models.Save{UserID: userID, PostID: postID}
	if err := r.db.Create(save).Error; err != nil {
		return nil, err
	}
	return save, nil
}

// UnsavePost removes a bookmark; returns whether a row was removed
func (r *PostgresSaveRepository) UnsavePost(userID, postID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Save{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsPostSaved reports whether the user has saved the post
func (r *PostgresSaveRepository) IsPostSaved(userID, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Save{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserSavedPosts returns the user's bookmarks with the saved posts and
// their authors, newest bookmark first
func (r *PostgresSaveRepository) GetUserSavedPosts(userID uint, limit int) ([]models.SavedPost, error) {
	var saves []models.Save
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&saves).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.SavedPost, 0, len(saves))
	for _, s := range saves {
		var post models.Post
		if err := r.db.Preload("Author").First(&post, s.PostID).Error; err != nil {
			continue
		}
		result = append(result, models.SavedPost{
			Save: s,
			Post: models.PostWithAuthor{Post: post, AuthorProfile: post.Author.ToCompact()},
		})
	}
	return result, nil
}

// GetSavedPostIDs returns which of the given posts the user has saved
func (r *PostgresSaveRepository) GetSavedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var saves []models.Save
	err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&saves).Error
	if err != nil {
		return nil, err
	}
	for _, s := range saves {
		result[s.PostID] = true
	}
	return result, nil
}
