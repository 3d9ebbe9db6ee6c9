package models

import "time"

// Post types. Category is free-form and carries no closed enum.
const (
	PostTypeBlog    = "blog"
	PostTypePicture = "picture"
	PostTypeVideo   = "video"
)

// Post is a piece of content owned by its author. AuthorID is immutable
// after creation; UpdatedAt is refreshed on every mutation.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text"`
	PostType  string    `json:"post_type" gorm:"size:20"`
	Category  string    `json:"category" gorm:"index"`
	MediaURL  string    `json:"media_url"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title    string `json:"title" form:"title" validate:"required,min=1,max=200"`
	Content  string `json:"content" form:"content" validate:"required,min=1"`
	PostType string `json:"post_type" form:"post_type" validate:"required,oneof=blog picture video"`
	Category string `json:"category" form:"category" validate:"required,min=1,max=50"`
}

// UpdatePostRequest defines a partial post update. Empty fields are left
// unchanged.
type UpdatePostRequest struct {
	Title    string `json:"title,omitempty" form:"title" validate:"omitempty,min=1,max=200"`
	Content  string `json:"content,omitempty" form:"content" validate:"omitempty,min=1"`
	Category string `json:"category,omitempty" form:"category" validate:"omitempty,min=1,max=50"`
}

// PostView is the shaped representation of a post returned by the API.
// IsLiked and IsSaved are viewer-relative, computed from edge-set membership
// at read time.
type PostView struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	PostType      string    `json:"post_type"`
	Category      string    `json:"category"`
	MediaURL      string    `json:"media_url"`
	Author        UserView  `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	IsLiked       bool      `json:"is_liked"`
	IsSaved       bool      `json:"is_saved"`
}
