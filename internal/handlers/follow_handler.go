package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chyrp-social/backend/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:username/follow", h.FollowUser)
	g.DELETE("/users/:username/follow", h.UnfollowUser)
}

// FollowUser follows a user. Following again is a no-op; following
// yourself fails with 400.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	username := c.Param("username")

	target, err := h.userRepository.GetUserByUsername(c.Request().Context(), username)
	if err != nil {
		return storeError(err)
	}
	if err := h.followRepository.Follow(c.Request().Context(), currentUserID, target.ID); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Now following " + username})
}

// UnfollowUser unfollows a user. Unfollowing someone not followed is a
// no-op.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	username := c.Param("username")

	target, err := h.userRepository.GetUserByUsername(c.Request().Context(), username)
	if err != nil {
		return storeError(err)
	}
	if err := h.followRepository.Unfollow(c.Request().Context(), currentUserID, target.ID); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed " + username})
}
