package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chyrp-social/backend/internal/repositories"
)

// SavedPostHandler handles save/unsave HTTP requests. Unlike likes, no
// count is returned.
type SavedPostHandler struct {
	savedPostRepository repositories.SavedPostRepository
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(savedPostRepo repositories.SavedPostRepository) *SavedPostHandler {
	return &SavedPostHandler{savedPostRepository: savedPostRepo}
}

// RegisterSavedPostRoutes registers save-related routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:id/save", h.SavePost)
	g.DELETE("/posts/:id/save", h.UnsavePost)
}

// SavePost adds the viewer's save if absent
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	postID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.savedPostRepository.AddSave(c.Request().Context(), postID, getUserIDFromContext(c)); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post saved"})
}

// UnsavePost removes the viewer's save if present
func (h *SavedPostHandler) UnsavePost(c echo.Context) error {
	postID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.savedPostRepository.RemoveSave(c.Request().Context(), postID, getUserIDFromContext(c)); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post unsaved"})
}
