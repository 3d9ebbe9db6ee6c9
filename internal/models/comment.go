package models

import "time"

// Comment belongs to a post. No nested replies; the parent post is immutable.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	PostID    uint      `json:"post_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" form:"content" validate:"required,min=1,max=500"`
}

// CommentView is the shaped representation of a comment returned by the API
type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Author    UserView  `json:"author"`
	PostID    uint      `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
