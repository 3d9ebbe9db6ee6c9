package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chyrp-social/backend/internal/models"
)

// CommentRepository defines the interface for comment operations. Comments
// have no edit or delete surface; they disappear only when their post is
// deleted (see PostgresPostRepository.DeletePost).
type CommentRepository interface {
	AddComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error)
	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	GetCommentsCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

// PostgresCommentRepository implements CommentRepository over gorm
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) postExists(ctx context.Context, postID uint) error {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AddComment persists a comment on the post, failing with ErrNotFound when
// the post is absent
func (r *PostgresCommentRepository) AddComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	if err := r.postExists(ctx, postID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Content:  content,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the post's comments oldest first
func (r *PostgresCommentRepository) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if err := r.postExists(ctx, postID); err != nil {
		return nil, err
	}
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsCountByPostIDs derives comment counts for a batch of posts
func (r *PostgresCommentRepository) GetCommentsCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64)
	if len(postIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		PostID uint
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
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
