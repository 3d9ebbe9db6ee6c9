package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chyrp-social/backend/internal/models"
	"github.com/chyrp-social/backend/internal/query"
	"github.com/chyrp-social/backend/internal/repositories"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	facade            *query.Facade
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, facade *query.Facade) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		facade:            facade,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.ListComments)
	g.POST("/posts/:id/comments", h.CreateComment)
}

// ListComments returns a post's comments oldest first
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.commentRepository.ListComments(c.Request().Context(), postID)
	if err != nil {
		return storeError(err)
	}
	views, err := h.facade.ShapeComments(c.Request().Context(), comments)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.AddComment(c.Request().Context(), postID, getUserIDFromContext(c), req.Content)
	if err != nil {
		return storeError(err)
	}

	views, err := h.facade.ShapeComments(c.Request().Context(), []models.Comment{*comment})
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, views[0])
}
