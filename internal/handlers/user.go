package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chyrp-social/backend/internal/models"
	"github.com/chyrp-social/backend/internal/query"
	"github.com/chyrp-social/backend/internal/repositories"
	"github.com/chyrp-social/backend/internal/storage"
)

// UserHandler handles profile HTTP requests
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	facade           *query.Facade
	store            *storage.LocalStorage
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, facade *query.Facade, store *storage.LocalStorage) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		facade:           facade,
		store:            store,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.Me)
	g.PUT("/users/me", h.UpdateMe)
	g.GET("/users/:username", h.GetProfile)
	g.GET("/users/:username/followers", h.GetFollowers)
	g.GET("/users/:username/following", h.GetFollowing)
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c echo.Context) error {
	view, err := h.facade.UserViewByID(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateMe applies a partial profile update. Absent fields are left
// unchanged; an optional avatar upload goes to the images bucket and only
// its reference path is stored.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	avatarURL := ""
	if file, err := c.FormFile("avatar"); err == nil {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot read avatar upload")
		}
		defer src.Close()
		avatarURL, err = h.store.Save(storage.BucketImages, file.Filename, src)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	user, err := h.userRepository.UpdateProfile(c.Request().Context(), currentUserID, req.FullName, req.Bio, avatarURL)
	if err != nil {
		return storeError(err)
	}

	view, err := h.facade.UserView(c.Request().Context(), user)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetProfile returns a user's profile by username
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return storeError(err)
	}
	view, err := h.facade.UserView(c.Request().Context(), user)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetFollowers lists the users following the addressed user
func (h *UserHandler) GetFollowers(c echo.Context) error {
	return h.listEdge(c, h.followRepository.GetFollowers)
}

// GetFollowing lists the users the addressed user follows
func (h *UserHandler) GetFollowing(c echo.Context) error {
	return h.listEdge(c, h.followRepository.GetFollowing)
}

func (h *UserHandler) listEdge(c echo.Context, fetch func(ctx context.Context, id uint) ([]models.User, error)) error {
	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		return storeError(err)
	}
	users, err := fetch(ctx, user.ID)
	if err != nil {
		return storeError(err)
	}
	views := make([]models.UserView, 0, len(users))
	for i := range users {
		view, err := h.facade.UserView(ctx, &users[i])
		if err != nil {
			return storeError(err)
		}
		views = append(views, view)
	}
	return c.JSON(http.StatusOK, views)
}
