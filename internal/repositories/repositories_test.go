package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lumagram/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// A single connection is forced so every query sees the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.Save{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.MessageRead{},
		&models.Notification{},
		&models.StoryView{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed",
		Name:     username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedPost creates a post through the repository so the author's post count
// stays consistent. createdAt must be distinct across posts that will be
// paginated, since feeds order strictly by creation time.
func seedPost(t *testing.T, db *gorm.DB, authorID uint, caption string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		AuthorID: authorID,
		Caption:  caption,
		Media: []models.MediaItem{
			{URL: "https://cdn.example.com/" + caption + ".jpg", Type: "image"},
		},
		CreatedAt: createdAt,
	}
	require.NoError(t, NewPostgresPostRepository(db).CreatePost(post))
	return post
}
