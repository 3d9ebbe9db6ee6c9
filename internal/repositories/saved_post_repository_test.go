package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyrp-social/backend/internal/models"
)

func TestSaveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSavedPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "Hello", "sports", time.Now())

	require.NoError(t, repo.AddSave(ctx, post.ID, bob.ID))
	require.NoError(t, repo.AddSave(ctx, post.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.PostSave{}).
		Where("user_id = ? AND post_id = ?", bob.ID, post.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.RemoveSave(ctx, post.ID, bob.ID))
	require.NoError(t, repo.RemoveSave(ctx, post.ID, bob.ID))

	saved, err := repo.IsPostSaved(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestToggleSave(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSavedPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "Hello", "sports", time.Now())

	saved, err := repo.ToggleSave(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = repo.ToggleSave(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestSaveMissingPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSavedPostRepository(db)

	bob := createTestUser(t, db, "bob")

	err := repo.AddSave(context.Background(), 9999, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
