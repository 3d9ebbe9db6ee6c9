package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chyrp-social/backend/internal/models"
	"github.com/chyrp-social/backend/internal/repositories"
)

// getUserIDFromContext returns the authenticated user's ID from the JWT
// claims, or 0 when unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// storeError translates the stores' stable error kinds into HTTP errors:
// NotFound→404, Forbidden→403, DuplicateIdentity/SelfReference→400.
func storeError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, repositories.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized")
	case errors.Is(err, repositories.ErrDuplicateIdentity):
		return echo.NewHTTPError(http.StatusBadRequest, "User with this email or username already exists")
	case errors.Is(err, repositories.ErrSelfReference):
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// pageFromQuery reads skip/limit query parameters; defaults are applied by
// Page.Normalize at the store.
func pageFromQuery(c echo.Context) repositories.Page {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return repositories.Page{Skip: skip, Limit: limit}
}

// uintParam parses a numeric path parameter
func uintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(v), nil
}
