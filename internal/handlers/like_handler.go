package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chyrp-social/backend/internal/repositories"
)

// LikeHandler handles like/unlike HTTP requests. Both verbs are idempotent:
// POST adds the edge if absent, DELETE removes it if present.
type LikeHandler struct {
	likeRepository repositories.LikeRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository) *LikeHandler {
	return &LikeHandler{likeRepository: likeRepo}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
}

// LikePost adds the viewer's like if absent and returns the resulting count
func (h *LikeHandler) LikePost(c echo.Context) error {
	postID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	count, err := h.likeRepository.AddLike(c.Request().Context(), postID, getUserIDFromContext(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post liked", "likes_count": count})
}

// UnlikePost removes the viewer's like if present and returns the resulting
// count
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	postID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	count, err := h.likeRepository.RemoveLike(c.Request().Context(), postID, getUserIDFromContext(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post unliked", "likes_count": count})
}
