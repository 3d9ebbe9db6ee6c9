package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account holder. Email and Username are globally unique.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Username     string    `json:"username" gorm:"uniqueIndex"`
	FullName     string    `json:"full_name"`
	Bio          string    `json:"bio" gorm:"type:text"`
	AvatarURL    string    `json:"avatar_url"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest defines the request body for registering a new account
type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Username string `json:"username" form:"username" validate:"required,min=2,max=50"`
	FullName string `json:"full_name" form:"full_name" validate:"required,min=1,max=100"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for logging in
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UpdateProfileRequest defines a partial profile update. Empty fields are
// left unchanged.
type UpdateProfileRequest struct {
	FullName string `json:"full_name,omitempty" form:"full_name" validate:"omitempty,min=1,max=100"`
	Bio      string `json:"bio,omitempty" form:"bio" validate:"omitempty,max=1000"`
}

// UserView is the shaped representation of a user returned by the API.
// Follower counts are derived from the follow edge-set, never stored.
type UserView struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
