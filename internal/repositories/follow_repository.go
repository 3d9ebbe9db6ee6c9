package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chyrp-social/backend/internal/models"
	"github.com/chyrp-social/backend/internal/policy"
)

// FollowRepository defines the interface for the follow edge-set
type FollowRepository interface {
	Follow(ctx context.Context, followerID, targetID uint) error
	Unfollow(ctx context.Context, followerID, targetID uint) error
	IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
}

// PostgresFollowRepository implements FollowRepository over gorm
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// Follow adds a directed edge from follower to target. Following yourself
// fails with ErrSelfReference, a missing target with ErrNotFound. An
// existing edge is an idempotent no-op: the insert lands on the composite
// unique index with ON CONFLICT DO NOTHING, so racing duplicate requests
// converge on a single edge.
func (r *PostgresFollowRepository) Follow(ctx context.Context, followerID, targetID uint) error {
	if !policy.CanFollow(followerID, targetID) {
		return ErrSelfReference
	}
	var target models.User
	if err := r.db.WithContext(ctx).First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	follow := &models.Follow{FollowerID: followerID, FollowingID: targetID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
}

// Unfollow removes the edge if present. A missing edge is a no-op.
func (r *PostgresFollowRepository) Unfollow(ctx context.Context, followerID, targetID uint) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, targetID).
		Delete(&models.Follow{}).Error
}

// IsFollowing checks whether the directed edge exists
func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, targetID).
		Count(&count).Error
	return count > 0, err
}

// GetFollowersCount derives the follower count from edge-set cardinality
func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// GetFollowingCount derives the following count from edge-set cardinality
func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// GetFollowers lists the users following userID
func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// GetFollowing lists the users userID follows
func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN (?)",
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID),
	).Find(&users).Error
	return users, err
}
