package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumagram/backend/internal/repositories"
)

// SearchHandler handles combined user/post search requests
type SearchHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository) *SearchHandler {
	return &SearchHandler{
		userRepository: userRepo,
		postRepository: postRepo,
	}
}

// RegisterSearchRoutes registers search routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search searches users by username/name and posts by caption. The "type"
// query parameter narrows the search to "users" or "posts"; default is both.
func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter 'q' is required")
	}

	searchType := c.QueryParam("type")
	if searchType == "" {
		searchType = "all"
	}
	limit := parseLimit(c, 20, 50)

	results := echo.Map{}

	if searchType == "users" || searchType == "all" {
		users, err := h.userRepository.SearchUsers(query, limit)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		results["users"] = users
	}

	if searchType == "posts" || searchType == "all" {
		posts, err := h.postRepository.SearchPosts(query, limit)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		results["posts"] = posts
	}

	return c.JSON(http.StatusOK, results)
}
