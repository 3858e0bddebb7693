package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumagram/backend/internal/models"
	"github.com/lumagram/backend/internal/repositories"
)

// FeedHandler handles feed and explore HTTP requests
type FeedHandler struct {
	postRepository repositories.PostRepository
	likeRepository repositories.LikeRepository
	saveRepository repositories.SaveRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	saveRepo repositories.SaveRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		likeRepository: likeRepo,
		saveRepository: saveRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/explore", h.GetExplore)
}

// FeedPost is a post with author info and user-specific flags
type FeedPost struct {
	models.PostWithAuthor
	IsLiked bool `json:"is_liked"`
	IsSaved bool `json:"is_saved"`
}

// GetFeed returns posts from users the current user follows, newest first,
// with cursor pagination
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	limit := parseLimit(c, 20, 50)
	cursor := parseCursor(c)

	posts, err := h.postRepository.GetFeedPosts(currentUserID, limit, cursor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrich(currentUserID, posts))
}

// GetExplore returns popular posts ordered by like+comment count then
// recency, with cursor pagination
func (h *FeedHandler) GetExplore(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	limit := parseLimit(c, 20, 50)
	cursor := parseCursor(c)

	posts, err := h.postRepository.GetExplorePosts(limit, cursor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrich(currentUserID, posts))
}

func (h *FeedHandler) enrich(currentUserID uint, posts []models.PostWithAuthor) []FeedPost {
	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likedMap := make(map[uint]bool)
	savedMap := make(map[uint]bool)
	if currentUserID > 0 {
		likedMap, _ = h.likeRepository.GetLikedPostIDs(currentUserID, postIDs)
		savedMap, _ = h.saveRepository.GetSavedPostIDs(currentUserID, postIDs)
	}

	feed := make([]FeedPost, len(posts))
	for i, p := range posts {
		feed[i] = FeedPost{
			PostWithAuthor: p,
			IsLiked:        likedMap[p.ID],
			IsSaved:        savedMap[p.ID],
		}
	}
	return feed
}
