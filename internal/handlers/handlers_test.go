package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/lumagram/backend/internal/middleware"
	"github.com/lumagram/backend/internal/models"
	"github.com/lumagram/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestAPI wires the full HTTP surface over an in-memory database, minus
// the Mongo-backed story routes.
func newTestAPI(t *testing.T) (*echo.Echo, *gorm.DB) {
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

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	saveRepo := repositories.NewPostgresSaveRepository(db)
	conversationRepo := repositories.NewPostgresConversationRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	e := echo.New()

	authGroup := e.Group("/api/v1/auth")
	NewAuthHandler(userRepo, nil).RegisterAuthRoutes(authGroup)

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	NewUserHandler(userRepo, postRepo).RegisterUserRoutes(api)
	NewPostHandler(postRepo, userRepo).RegisterPostRoutes(api)
	NewFeedHandler(postRepo, likeRepo, saveRepo).RegisterFeedRoutes(api)
	NewFollowHandler(followRepo, userRepo, notificationRepo).RegisterFollowRoutes(api)
	NewLikeHandler(likeRepo, postRepo, notificationRepo).RegisterLikeRoutes(api)
	NewCommentHandler(commentRepo, postRepo, notificationRepo).RegisterCommentRoutes(api)
	NewSaveHandler(saveRepo, postRepo).RegisterSaveRoutes(api)
	NewSearchHandler(userRepo, postRepo).RegisterSearchRoutes(api)
	NewConversationHandler(conversationRepo, messageRepo, userRepo, notificationRepo).RegisterConversationRoutes(api)
	NewNotificationHandler(notificationRepo, userRepo).RegisterNotificationRoutes(api)
	NewStoryHandler(newFakeStoryRepository(), userRepo, followRepo).RegisterStoryRoutes(api)

	return e, db
}

// doJSON performs a request against the test server and returns the recorder.
// token may be empty for unauthenticated requests.
func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// registerUser registers a user through the API and returns their token and ID.
func registerUser(t *testing.T, e *echo.Echo, username string) (string, uint) {
	t.Helper()

	rec := doJSON(t, e, "POST", "/api/v1/auth/register", "", echo.Map{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "password123",
		"name":     username,
	})
	require.Equal(t, 201, rec.Code, rec.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotZero(t, resp.User.ID)
	return resp.Token, resp.User.ID
}
