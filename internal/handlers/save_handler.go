package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lumagram/backend/internal/repositories"
	"gorm.io/gorm"
)

// SaveHandler handles HTTP requests related to saved posts
type SaveHandler struct {
	saveRepository repositories.SaveRepository
	postRepository repositories.PostRepository
}

// NewSaveHandler creates a new SaveHandler
func NewSaveHandler(saveRepo repositories.SaveRepository, postRepo repositories.PostRepository) *SaveHandler {
	return &SaveHandler{
		saveRepository: saveRepo,
		postRepository: postRepo,
	}
}

// RegisterSaveRoutes registers saved-post routes
func (h *SaveHandler) RegisterSaveRoutes(g *echo.Group) {
	g.POST("/posts/:id/save", h.SavePost)
	g.DELETE("/posts/:id/save", h.UnsavePost)
	g.GET("/saved", h.GetSavedPosts)
}

// SavePost bookmarks a post for the current user
func (h *SaveHandler) SavePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(uint(postID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	alreadySaved, err := h.saveRepository.IsPostSaved(currentUserID, uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if alreadySaved {
		return echo.NewHTTPError(http.StatusConflict, "Post already saved")
	}

	save, err := h.saveRepository.SavePost(currentUserID, uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, save)
}

// UnsavePost removes a bookmark
func (h *SaveHandler) UnsavePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	deleted, err := h.saveRepository.UnsavePost(currentUserID, uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "Save not found")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetSavedPosts returns the current user's bookmarked posts
func (h *SaveHandler) GetSavedPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	limit := parseLimit(c, 20, 100)

	saved, err := h.saveRepository.GetUserSavedPosts(currentUserID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, saved)
}
