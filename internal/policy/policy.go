// Package policy holds the pure authorization predicates gating mutation.
// The stores consult these before writing; violations surface as Forbidden
// or SelfReference errors, never as silent no-ops.
package policy

import "github.com/chyrp-social/backend/internal/models"

// CanMutatePost reports whether callerID may update or delete the post.
// Only the owning author may; ownership is immutable after creation.
func CanMutatePost(post *models.Post, callerID uint) bool {
	return post.AuthorID == callerID
}

// CanFollow reports whether followerID may follow targetID. Self-follow
// edges are never allowed.
func CanFollow(followerID, targetID uint) bool {
	return followerID != targetID
}
