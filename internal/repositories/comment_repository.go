package repositories

import (
	"github.com/lumagram/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetPostComments(postID uint, limit int) ([]models.CommentWithAuthor, error)
	DeleteComment(id, authorID uint) (bool, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment inserts the comment and bumps the post's comment count in
// one transaction
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetPostComments returns a post's comments with their authors, newest first
func (r *PostgresCommentRepository) GetPostComments(postID uint, limit int) ([]models.CommentWithAuthor, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	userCache := make(map[uint]models.UserCompact)
	result := make([]models.CommentWithAuthor, len(comments))
	for i, c := range comments {
		result[i] = models.CommentWithAuthor{Comment: c}
		if author, ok := userCache[c.AuthorID]; ok {
			result[i].AuthorProfile = author
			continue
		}
		var user models.User
		if err := r.db.First(&user, c.AuthorID).Error; err == nil {
			compact := user.ToCompact()
			userCache[c.AuthorID] = compact
			result[i].AuthorProfile = compact
		}
	}
	return result, nil
}

// DeleteComment deletes a comment only if authorID wrote it, decrementing the
// post's comment count in the same transaction; returns whether a row was
// removed
func (r *PostgresCommentRepository) DeleteComment(id, authorID uint) (bool, error) {
	deleted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Where("id = ? AND author_id = ?", id, authorID).First(&comment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		deleted = true
		return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", 1)).Error
	})
	return deleted, err
}
