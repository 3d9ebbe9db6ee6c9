package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chyrp-social/backend/internal/query"
)

// SearchHandler handles search across posts and users
type SearchHandler struct {
	facade *query.Facade
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(facade *query.Facade) *SearchHandler {
	return &SearchHandler{facade: facade}
}

// RegisterSearchRoutes registers search-related routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search runs a case-insensitive substring search. search_type selects
// users or posts (the default).
func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing query parameter q")
	}
	page := pageFromQuery(c)

	if c.QueryParam("search_type") == "users" {
		views, err := h.facade.SearchUsers(c.Request().Context(), q, page)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, views)
	}

	views, err := h.facade.SearchPosts(c.Request().Context(), q, page, getUserIDFromContext(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, views)
}
