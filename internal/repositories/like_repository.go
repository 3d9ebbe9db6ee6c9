package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chyrp-social/backend/internal/models"
)

// LikeRepository defines the interface for the like edge-set
type LikeRepository interface {
	AddLike(ctx context.Context, postID, userID uint) (int64, error)
	RemoveLike(ctx context.Context, postID, userID uint) (int64, error)
	ToggleLike(ctx context.Context, postID, userID uint) (bool, int64, error)
	HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error)
	GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error)
	GetLikesCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository over gorm
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) postExists(ctx context.Context, tx *gorm.DB, postID uint) error {
	var post models.Post
	if err := tx.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AddLike adds the edge if absent and returns the resulting like count.
// The insert lands on the (post_id, user_id) unique index with ON CONFLICT
// DO NOTHING, so a duplicate request or a racing retry is a no-op.
func (r *PostgresLikeRepository) AddLike(ctx context.Context, postID, userID uint) (int64, error) {
	if err := r.postExists(ctx, r.db, postID); err != nil {
		return 0, err
	}
	like := &models.PostLike{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
		return 0, err
	}
	return r.GetLikesCountByPostID(ctx, postID)
}

// RemoveLike removes the edge if present and returns the resulting like
// count. A missing edge is a no-op.
func (r *PostgresLikeRepository) RemoveLike(ctx context.Context, postID, userID uint) (int64, error) {
	if err := r.postExists(ctx, r.db, postID); err != nil {
		return 0, err
	}
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{}).Error
	if err != nil {
		return 0, err
	}
	return r.GetLikesCountByPostID(ctx, postID)
}

// ToggleLike flips edge membership inside one transaction and returns the
// resulting state plus like count. Calling it twice returns to the
// original membership.
func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, postID, userID uint) (bool, int64, error) {
	var liked bool
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.postExists(ctx, tx, postID); err != nil {
			return err
		}
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := &models.PostLike{PostID: postID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return err
			}
			liked = true
		}
		return tx.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	})
	return liked, count, err
}

// HasUserLikedPost checks edge membership for one viewer
func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

// GetLikesCountByPostID derives the like count from edge-set cardinality
func (r *PostgresLikeRepository) GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// GetLikesCountByPostIDs derives like counts for a batch of posts
func (r *PostgresLikeRepository) GetLikesCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64)
	if len(postIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		PostID uint
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostID] = row.Count
	}
	return result, nil
}

// GetLikedPostIDs reports which of the given posts the user has liked
func (r *PostgresLikeRepository) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var likes []models.PostLike
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.PostID] = true
	}
	return result, nil
}
