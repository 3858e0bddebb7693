package repositories

import (
	"github.com/lumagram/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostWithAuthor(id uint) (*models.PostWithAuthor, error)
	DeletePost(id, authorID uint) (bool, error)
	GetUserPosts(userID uint, limit int, cursor uint) ([]models.Post, error)
	GetFeedPosts(userID uint, limit int, cursor uint) ([]models.PostWithAuthor, error)
	GetExplorePosts(limit int, cursor uint) ([]models.PostWithAuthor, error)
	SearchPosts(query string, limit int) ([]models.PostWithAuthor, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts a post and bumps the author's posts count in one transaction
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", post.AuthorID).
			UpdateColumn("posts_count", gorm.Expr("posts_count + ?", 1)).Error
	})
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostWithAuthor retrieves a post together with its author
func (r *PostgresPostRepository) GetPostWithAuthor(id uint) (*models.PostWithAuthor, error) {
	var post models.Post
	if err := r.db.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	enriched := models.PostWithAuthor{Post: post, AuthorProfile: post.Author.ToCompact()}
	return &enriched, nil
}

// DeletePost deletes a post only if authorID owns it, decrementing the author's
// posts count in the same transaction. Likes, comments and saves referencing
// the post are removed by the cascade constraints. Returns whether a row was
// removed; a false result covers both an absent post and a non-owner caller.
func (r *PostgresPostRepository) DeletePost(id, authorID uint) (bool, error) {
	deleted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND author_id = ?", id, authorID).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Model(&models.User{}).Where("id = ?", authorID).
			UpdateColumn("posts_count", gorm.Expr("posts_count - ?", 1)).Error
	})
	return deleted, err
}

// cursorScope restricts a query to rows strictly older than the cursor post.
// The cursor is the ID of the last row of the previous page; zero means the
// first page.
func postCursorScope(db *gorm.DB, cursor uint) *gorm.DB {
	if cursor == 0 {
		return db
	}
	return db.Where("posts.created_at < (?)",
		db.Session(&gorm.Session{NewDB: true}).Model(&models.Post{}).Select("created_at").Where("id = ?", cursor),
	)
}

// GetUserPosts returns a user's posts, newest first, with cursor pagination
func (r *PostgresPostRepository) GetUserPosts(userID uint, limit int, cursor uint) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.Where("author_id = ?", userID)
	q = postCursorScope(q, cursor)
	err := q.Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

// GetFeedPosts returns posts authored by users the given user follows,
// newest first, with cursor pagination
func (r *PostgresPostRepository) GetFeedPosts(userID uint, limit int, cursor uint) ([]models.PostWithAuthor, error) {
	followingIDs := r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID)

	var posts []models.Post
	q := r.db.Preload("Author").Where("author_id IN (?)", followingIDs)
	q = postCursorScope(q, cursor)
	if err := q.Order("created_at DESC").Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return withAuthors(posts), nil
}

// GetExplorePosts returns posts ordered by like+comment popularity then
// recency, with cursor pagination
func (r *PostgresPostRepository) GetExplorePosts(limit int, cursor uint) ([]models.PostWithAuthor, error) {
	var posts []models.Post
	q := r.db.Preload("Author")
	q = postCursorScope(q, cursor)
	err := q.Order("(like_count + comment_count) DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return withAuthors(posts), nil
}

// SearchPosts searches post captions (case-insensitive), newest first
func (r *PostgresPostRepository) SearchPosts(query string, limit int) ([]models.PostWithAuthor, error) {
	var posts []models.Post
	err := r.db.Preload("Author").
		Where("LOWER(caption) LIKE LOWER(?)", "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return withAuthors(posts), nil
}

func withAuthors(posts []models.Post) []models.PostWithAuthor {
	enriched := make([]models.PostWithAuthor, len(posts))
	for i, p := range posts {
		enriched[i] = models.PostWithAuthor{Post: p, AuthorProfile: p.Author.ToCompact()}
	}
	return enriched
}
