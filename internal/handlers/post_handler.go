package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chyrp-social/backend/internal/models"
	"github.com/chyrp-social/backend/internal/query"
	"github.com/chyrp-social/backend/internal/repositories"
	"github.com/chyrp-social/backend/internal/storage"
)

// PostHandler handles post CRUD HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
	facade         *query.Facade
	store          *storage.LocalStorage
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, facade *query.Facade, store *storage.LocalStorage) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		facade:         facade,
		store:          store,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:username/posts", h.ListPostsByAuthor)
}

// ListPosts returns posts newest first, filtered by category and by
// viewer-relative scope (all|saved|liked via filter_type).
func (h *PostHandler) ListPosts(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	filter := repositories.PostFilter{
		Category: c.QueryParam("category"),
		Scope:    repositories.ScopeAll,
	}
	switch c.QueryParam("filter_type") {
	case "saved":
		filter.Scope = repositories.ScopeSaved
	case "liked":
		filter.Scope = repositories.ScopeLiked
	}

	views, err := h.facade.ListPosts(c.Request().Context(), filter, pageFromQuery(c), viewerID)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// CreatePost creates a post. An optional media upload goes to the videos
// bucket for video posts, images otherwise; only the reference path is
// stored.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	mediaURL := ""
	if file, err := c.FormFile("media"); err == nil {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot read media upload")
		}
		defer src.Close()
		mediaURL, err = h.store.Save(storage.BucketForPostType(req.PostType), file.Filename, src)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		PostType: req.PostType,
		Category: req.Category,
		MediaURL: mediaURL,
		AuthorID: currentUserID,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return storeError(err)
	}

	view, err := h.facade.PostView(c.Request().Context(), post, currentUserID)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetPost returns one post shaped for the viewer
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return storeError(err)
	}
	view, err := h.facade.PostView(c.Request().Context(), post, getUserIDFromContext(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdatePost applies a partial update. Only the author may update; any
// mutation bumps updated_at.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	mediaURL := ""
	if file, err := c.FormFile("media"); err == nil {
		post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
		if err != nil {
			return storeError(err)
		}
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot read media upload")
		}
		defer src.Close()
		mediaURL, err = h.store.Save(storage.BucketForPostType(post.PostType), file.Filename, src)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	post, err := h.postRepository.UpdatePost(c.Request().Context(), postID, currentUserID, req, mediaURL)
	if err != nil {
		return storeError(err)
	}

	view, err := h.facade.PostView(c.Request().Context(), post, currentUserID)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeletePost removes a post and its dependent edges and comments. Only the
// author may delete.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.postRepository.DeletePost(c.Request().Context(), postID, currentUserID); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// ListPostsByAuthor returns a user's posts newest first
func (h *PostHandler) ListPostsByAuthor(c echo.Context) error {
	views, err := h.facade.ListPostsByAuthor(c.Request().Context(), c.Param("username"), pageFromQuery(c), getUserIDFromContext(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, views)
}
