package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/lumagram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// storyTTL is how long a story stays visible after creation
const storyTTL = 24 * time.Hour

// StoryRepository defines the interface for story operations. Stories live in
// MongoDB; per-user view tracking lives in PostgreSQL.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetStoriesByUserIDs(ctx context.Context, userIDs []uint) ([]models.Story, error)
	DeleteExpiredStories(ctx context.Context) error
	MarkViewed(storyID string, userID uint) error
	GetViewedStoryIDs(userID uint, storyIDs []string) (map[string]bool, error)
	GetViewers(storyID string) ([]uint, error)
}

type storyRepository struct {
	mongoCollection *mongo.Collection
	pgDB            *gorm.DB
}

// NewStoryRepository creates a StoryRepository over the given Mongo database
// and PostgreSQL connection
func NewStoryRepository(mongoDB *mongo.Database, pgDB *gorm.DB) StoryRepository {
	return &storyRepository{
		mongoCollection: mongoDB.Collection("stories"),
		pgDB:            pgDB,
	}
}

func (r *storyRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(storyTTL)
	_, err := r.mongoCollection.InsertOne(ctx, story)
	return err
}

func (r *storyRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid story ID format")
	}
	var story models.Story
	err = r.mongoCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&story)
	if err != nil {
		return nil, err
	}
	return &story, nil
}

// GetStoriesByUserIDs returns the unexpired stories of the given users,
// newest first
func (r *storyRepository) GetStoriesByUserIDs(ctx context.Context, userIDs []uint) ([]models.Story, error) {
	filter := bson.M{
		"user_id":    bson.M{"$in": userIDs},
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.mongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *storyRepository) DeleteExpiredStories(ctx context.Context) error {
	_, err := r.mongoCollection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	return err
}

// MarkViewed records that the user has viewed the story; the unique index on
// (story_id, user_id) makes repeated calls a no-op
func (r *storyRepository) MarkViewed(storyID string, userID uint) error {
	var count int64
	err := r.pgDB.Model(&models.StoryView{}).
		Where("story_id = ? AND user_id = ?", storyID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	view := &models.StoryView{StoryID: storyID, UserID: userID, SeenAt: time.Now()}
	return r.pgDB.Create(view).Error
}

// GetViewedStoryIDs returns which of the given stories the user has viewed
func (r *storyRepository) GetViewedStoryIDs(userID uint, storyIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(storyIDs) == 0 {
		return result, nil
	}
	var views []models.StoryView
	err := r.pgDB.Where("user_id = ? AND story_id IN ?", userID, storyIDs).Find(&views).Error
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		result[v.StoryID] = true
	}
	return result, nil
}

// GetViewers returns the IDs of the users who viewed the story
func (r *storyRepository) GetViewers(storyID string) ([]uint, error) {
	var ids []uint
	err := r.pgDB.Model(&models.StoryView{}).
		Where("story_id = ?", storyID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}
