package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chyrp-social/backend/internal/models"
	"github.com/chyrp-social/backend/internal/query"
	"github.com/chyrp-social/backend/internal/repositories"
)

// MessageHandler handles direct message HTTP requests
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	facade            *query.Facade
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, facade *query.Facade) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		facade:            facade,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.ListMessages)
	g.GET("/messages/:user_id", h.GetConversation)
	g.POST("/messages/:user_id", h.SendMessage)
}

// ListMessages returns the inbox: every message the viewer sent or
// received, newest first
func (h *MessageHandler) ListMessages(c echo.Context) error {
	messages, err := h.messageRepository.ListForUser(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return storeError(err)
	}
	views, err := h.facade.ShapeMessages(c.Request().Context(), messages)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// GetConversation returns the thread with another user oldest first.
// Viewing marks unread messages addressed to the viewer as read.
func (h *MessageHandler) GetConversation(c echo.Context) error {
	otherID, err := uintParam(c, "user_id")
	if err != nil {
		return err
	}
	messages, err := h.messageRepository.ListConversation(c.Request().Context(), getUserIDFromContext(c), otherID)
	if err != nil {
		return storeError(err)
	}
	views, err := h.facade.ShapeMessages(c.Request().Context(), messages)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// SendMessage sends a direct message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	receiverID, err := uintParam(c, "user_id")
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.messageRepository.Send(c.Request().Context(), getUserIDFromContext(c), receiverID, req.Content)
	if err != nil {
		return storeError(err)
	}

	views, err := h.facade.ShapeMessages(c.Request().Context(), []models.Message{*message})
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, views[0])
}
