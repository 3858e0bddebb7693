package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lumagram/backend/internal/models"
	"github.com/lumagram/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository  repositories.StoryRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(
	storyRepo repositories.StoryRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
) *StoryHandler {
	return &StoryHandler{
		storyRepository:  storyRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories", h.GetStories)
	g.GET("/stories/:id", h.GetStory)
	g.POST("/stories/:id/view", h.MarkStoryViewed)
}

// CreateStory creates a story for the current user; it expires after 24 hours
func (h *StoryHandler) CreateStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story := &models.Story{
		UserID: currentUserID,
		Media: models.StoryMedia{
			ItemID: uuid.NewString(),
			URL:    req.MediaURL,
			Type:   req.Type,
		},
	}

	if err := h.storyRepository.CreateStory(c.Request().Context(), story); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, story)
}

// GetStories returns active stories from users the current user follows,
// plus their own, with view state
func (h *StoryHandler) GetStories(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	userIDs := append(followingIDs, currentUserID)

	stories, err := h.storyRepository.GetStoriesByUserIDs(c.Request().Context(), userIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	storyIDs := make([]string, len(stories))
	for i, s := range stories {
		storyIDs[i] = s.ID.Hex()
	}
	seenMap, _ := h.storyRepository.GetViewedStoryIDs(currentUserID, storyIDs)

	userCache := make(map[uint]models.UserCompact)
	enriched := make([]models.StoryWithAuthor, len(stories))
	for i, s := range stories {
		enriched[i] = models.StoryWithAuthor{
			Story:  s,
			IsSeen: seenMap[s.ID.Hex()],
		}
		if author, ok := userCache[s.UserID]; ok {
			enriched[i].Author = author
			continue
		}
		user, err := h.userRepository.GetUserByID(s.UserID)
		if err == nil {
			compact := user.ToCompact()
			userCache[s.UserID] = compact
			enriched[i].Author = compact
		}
	}

	return c.JSON(http.StatusOK, enriched)
}

// GetStory returns one story with its viewer list
func (h *StoryHandler) GetStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID := c.Param("id")

	story, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	viewers, err := h.storyRepository.GetViewers(storyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"story": story, "viewers": viewers})
}

// MarkStoryViewed records that the current user has viewed a story
func (h *StoryHandler) MarkStoryViewed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID := c.Param("id")

	if _, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID); err != nil {
		if err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.storyRepository.MarkViewed(storyID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
