package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyrp-social/backend/internal/models"
)

func TestCreateUserDuplicateIdentity(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &models.User{
		Email: "alice@example.com", Username: "alice", FullName: "Alice", PasswordHash: "x",
	}))

	// Same email, different username
	err := repo.CreateUser(ctx, &models.User{
		Email: "alice@example.com", Username: "alice2", FullName: "Alice", PasswordHash: "x",
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	// Same username, different email
	err = repo.CreateUser(ctx, &models.User{
		Email: "other@example.com", Username: "alice", FullName: "Alice", PasswordHash: "x",
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetUserByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "alice")

	user, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	updated, err := repo.UpdateProfile(ctx, alice.ID, "", "new bio", "")
	require.NoError(t, err)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, alice.FullName, updated.FullName, "absent fields stay unchanged")
	assert.Equal(t, alice.AvatarURL, updated.AvatarURL)

	updated, err = repo.UpdateProfile(ctx, alice.ID, "Alice Renamed", "", "/uploads/images/a.png")
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", updated.FullName)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "/uploads/images/a.png", updated.AvatarURL)
}

func TestUpdateProfileMissingUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	_, err := repo.UpdateProfile(context.Background(), 9999, "X", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUsersCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	found, err := repo.SearchUsers(ctx, "ALI", Page{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].Username)
}
