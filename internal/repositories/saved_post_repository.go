package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chyrp-social/backend/internal/models"
)

// SavedPostRepository defines the interface for the save edge-set.
// Unlike likes, no count is surfaced; the API never reports how many
// users saved a post.
type SavedPostRepository interface {
	AddSave(ctx context.Context, postID, userID uint) error
	RemoveSave(ctx context.Context, postID, userID uint) error
	ToggleSave(ctx context.Context, postID, userID uint) (bool, error)
	IsPostSaved(ctx context.Context, postID, userID uint) (bool, error)
	GetSavedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresSavedPostRepository implements SavedPostRepository over gorm
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

// NewPostgresSavedPostRepository creates a new PostgresSavedPostRepository
func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

func (r *PostgresSavedPostRepository) postExists(ctx context.Context, tx *gorm.DB, postID uint) error {
	var post models.Post
	if err := tx.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AddSave adds the edge if absent; duplicates are a no-op via the
// (user_id, post_id) unique index.
func (r *PostgresSavedPostRepository) AddSave(ctx context.Context, postID, userID uint) error {
	if err := r.postExists(ctx, r.db, postID); err != nil {
		return err
	}
	save := &models.PostSave{UserID: userID, PostID: postID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(save).Error
}

// RemoveSave removes the edge if present. A missing edge is a no-op.
func (r *PostgresSavedPostRepository) RemoveSave(ctx context.Context, postID, userID uint) error {
	if err := r.postExists(ctx, r.db, postID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostSave{}).Error
}

// ToggleSave flips edge membership inside one transaction and returns the
// resulting state.
func (r *PostgresSavedPostRepository) ToggleSave(ctx context.Context, postID, userID uint) (bool, error) {
	var saved bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.postExists(ctx, tx, postID); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.PostSave{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			save := &models.PostSave{UserID: userID, PostID: postID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(save).Error; err != nil {
				return err
			}
			saved = true
		}
		return nil
	})
	return saved, err
}

// IsPostSaved checks edge membership for one viewer
func (r *PostgresSavedPostRepository) IsPostSaved(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostSave{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// GetSavedPostIDs reports which of the given posts the user has saved
func (r *PostgresSavedPostRepository) GetSavedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var saves []models.PostSave
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&saves).Error
	if err != nil {
		return nil, err
	}
	for _, s := range saves {
		result[s.PostID] = true
	}
	return result, nil
}
