package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chyrp-social/backend/internal/models"
	"github.com/chyrp-social/backend/internal/policy"
)

// PostRepository defines the interface for post content operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	UpdatePost(ctx context.Context, postID, callerID uint, req models.UpdatePostRequest, mediaURL string) (*models.Post, error)
	DeletePost(ctx context.Context, postID, callerID uint) error
	ListPosts(ctx context.Context, filter PostFilter, page Page, viewerID uint) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uint, page Page) ([]models.Post, error)
	SearchPosts(ctx context.Context, query string, page Page) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository over gorm
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost persists a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial update after the ownership check. Empty
// request fields are left unchanged; UpdatedAt is bumped on any change,
// media included. Fails with ErrForbidden when the caller is not the
// author and the post stays untouched.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, postID, callerID uint, req models.UpdatePostRequest, mediaURL string) (*models.Post, error) {
	post, err := r.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutatePost(post, callerID) {
		return nil, ErrForbidden
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Category != "" {
		post.Category = req.Category
	}
	if mediaURL != "" {
		post.MediaURL = mediaURL
	}
	// Save refreshes UpdatedAt even when only the media reference changed.
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and its dependent like edges, save edges and
// comments in one transaction, all-or-nothing. Only the author may delete.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, postID, callerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !policy.CanMutatePost(&post, callerID) {
			return ErrForbidden
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostSave{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// ListPosts returns posts newest first, optionally restricted by category
// and by viewer-relative scope (saved/liked edge-set membership).
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter PostFilter, page Page, viewerID uint) ([]models.Post, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Post{}).Order("created_at DESC")

	if filter.Category != "" && filter.Category != "all" {
		q = q.Where("category = ?", filter.Category)
	}
	switch filter.Scope {
	case ScopeSaved:
		q = q.Where("id IN (?)",
			r.db.Table("post_saves").Select("post_id").Where("user_id = ?", viewerID))
	case ScopeLiked:
		q = q.Where("id IN (?)",
			r.db.Table("post_likes").Select("post_id").Where("user_id = ?", viewerID))
	}

	var posts []models.Post
	if err := q.Offset(page.Skip).Limit(page.Limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostsByAuthor returns the author's posts newest first
func (r *PostgresPostRepository) ListPostsByAuthor(ctx context.Context, authorID uint, page Page) ([]models.Post, error) {
	page = page.Normalize()
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset(page.Skip).Limit(page.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchPosts matches title or content by case-insensitive substring,
// newest first
func (r *PostgresPostRepository) SearchPosts(ctx context.Context, query string, page Page) ([]models.Post, error) {
	page = page.Normalize()
	var posts []models.Post
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Offset(page.Skip).Limit(page.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
