package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chyrp-social/backend/internal/models"
)

// MessageRepository defines the interface for direct messages. Sending to
// yourself is permitted.
type MessageRepository interface {
	Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Message, error)
	ListConversation(ctx context.Context, userID, otherID uint) ([]models.Message, error)
}

// PostgresMessageRepository implements MessageRepository over gorm
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// Send persists a message, failing with ErrNotFound when the receiver is
// absent
func (r *PostgresMessageRepository) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	var receiver models.User
	if err := r.db.WithContext(ctx).First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	message := &models.Message{
		Content:    content,
		SenderID:   senderID,
		ReceiverID: receiverID,
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// ListForUser returns every message the user sent or received, newest
// first. Note the opposite ordering from ListConversation.
func (r *PostgresMessageRepository) ListForUser(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListConversation returns the messages between the pair oldest first and,
// inside the same transaction, marks every unread message addressed to
// userID as read. The read flag only ever moves false to true.
func (r *PostgresMessageRepository) ListConversation(ctx context.Context, userID, otherID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, userID, false).
			Update("is_read", true).Error
		if err != nil {
			return err
		}
		return tx.
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userID, otherID, otherID, userID).
			Order("created_at ASC").
			Find(&messages).Error
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}
