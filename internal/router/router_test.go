package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chyrp-social/backend/pkg/config"
	"github.com/chyrp-social/backend/validators"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	cfg := &config.Config{
		Port:      "0",
		Env:       "test",
		JWTSecret: "test-secret",
		TokenTTL:  30 * time.Minute,
		UploadDir: t.TempDir(),
	}

	e := echo.New()
	e.Validator = validators.NewValidator()
	SetupMiddleware(e)
	require.NoError(t, SetupRoutes(e, db, cfg, zap.NewNop()))
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func doJSONList(t *testing.T, e *echo.Echo, method, path, token string) (*httptest.ResponseRecorder, []map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded []map[string]interface{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func register(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     username + "@example.com",
		"username":  username,
		"full_name": username + " Test",
		"password":  "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginAndDuplicate(t *testing.T) {
	e := newTestServer(t)

	register(t, e, "alice")

	// Duplicate username
	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     "other@example.com",
		"username":  "alice",
		"full_name": "Alice Two",
		"password":  "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["access_token"])

	// The username field also accepts the account email
	rec, body = doJSON(t, e, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["access_token"])

	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, e, http.MethodGet, "/api/v1/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLikeScenario(t *testing.T) {
	e := newTestServer(t)

	aliceToken := register(t, e, "alice")
	bobToken := register(t, e, "bob")

	rec, post := doJSON(t, e, http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{
		"title":     "Hello",
		"content":   "first post",
		"post_type": "blog",
		"category":  "sports",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	postID := fmt.Sprintf("%.0f", post["id"].(float64))

	// Bob likes: count becomes 1
	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/posts/"+postID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["likes_count"])

	// Liking again is idempotent
	rec, body = doJSON(t, e, http.MethodPost, "/api/v1/posts/"+postID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["likes_count"])

	// Unlike: count returns to 0
	rec, body = doJSON(t, e, http.MethodDelete, "/api/v1/posts/"+postID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["likes_count"])

	// Liking a missing post is a 404
	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/posts/9999/like", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostOwnershipOverHTTP(t *testing.T) {
	e := newTestServer(t)

	aliceToken := register(t, e, "alice")
	bobToken := register(t, e, "bob")

	rec, post := doJSON(t, e, http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{
		"title":     "Hello",
		"content":   "first post",
		"post_type": "blog",
		"category":  "sports",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	postID := fmt.Sprintf("%.0f", post["id"].(float64))

	rec, _ = doJSON(t, e, http.MethodPut, "/api/v1/posts/"+postID, bobToken, map[string]string{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, e, http.MethodDelete, "/api/v1/posts/"+postID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, updated := doJSON(t, e, http.MethodPut, "/api/v1/posts/"+postID, aliceToken, map[string]string{"title": "Hello again"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello again", updated["title"])

	rec, _ = doJSON(t, e, http.MethodDelete, "/api/v1/posts/"+postID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, e, http.MethodGet, "/api/v1/posts/"+postID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowOverHTTP(t *testing.T) {
	e := newTestServer(t)

	aliceToken := register(t, e, "alice")
	register(t, e, "bob")

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/users/alice/follow", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "self-follow is rejected")

	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/users/nobody/follow", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/users/bob/follow", aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, profile := doJSON(t, e, http.MethodGet, "/api/v1/users/bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), profile["followers_count"])

	recList, followers := doJSONList(t, e, http.MethodGet, "/api/v1/users/bob/followers", aliceToken)
	require.Equal(t, http.StatusOK, recList.Code)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0]["username"])

	rec, _ = doJSON(t, e, http.MethodDelete, "/api/v1/users/bob/follow", aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, profile = doJSON(t, e, http.MethodGet, "/api/v1/users/bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), profile["followers_count"])
}

func TestMessagingOverHTTP(t *testing.T) {
	e := newTestServer(t)

	aliceToken := register(t, e, "alice")
	bobToken := register(t, e, "bob")

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/messages/2", aliceToken, map[string]string{"content": "hi"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/messages/1", bobToken, map[string]string{"content": "yo"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Bob opens the conversation: oldest first, "hi" becomes read
	recList, conversation := doJSONList(t, e, http.MethodGet, "/api/v1/messages/1", bobToken)
	require.Equal(t, http.StatusOK, recList.Code)
	require.Len(t, conversation, 2)
	assert.Equal(t, "hi", conversation[0]["content"])
	assert.Equal(t, "yo", conversation[1]["content"])
	assert.Equal(t, true, conversation[0]["is_read"])

	// Inbox is newest first
	recList, inbox := doJSONList(t, e, http.MethodGet, "/api/v1/messages", aliceToken)
	require.Equal(t, http.StatusOK, recList.Code)
	require.Len(t, inbox, 2)
	assert.Equal(t, "yo", inbox[0]["content"])

	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/messages/9999", aliceToken, map[string]string{"content": "hello?"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchOverHTTP(t *testing.T) {
	e := newTestServer(t)

	aliceToken := register(t, e, "alice")

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{
		"title":     "Hello",
		"content":   "first post",
		"post_type": "blog",
		"category":  "sports",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	recList, found := doJSONList(t, e, http.MethodGet, "/api/v1/search?q=hel", aliceToken)
	require.Equal(t, http.StatusOK, recList.Code)
	require.Len(t, found, 1)
	assert.Equal(t, "Hello", found[0]["title"])

	recList, users := doJSONList(t, e, http.MethodGet, "/api/v1/search?q=ALI&search_type=users", aliceToken)
	require.Equal(t, http.StatusOK, recList.Code)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0]["username"])

	rec, _ = doJSON(t, e, http.MethodGet, "/api/v1/search", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavedScopeListing(t *testing.T) {
	e := newTestServer(t)

	aliceToken := register(t, e, "alice")
	bobToken := register(t, e, "bob")

	rec, post := doJSON(t, e, http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{
		"title":     "Keep me",
		"content":   "worth saving",
		"post_type": "blog",
		"category":  "school",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	postID := fmt.Sprintf("%.0f", post["id"].(float64))

	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/posts/"+postID+"/save", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	recList, saved := doJSONList(t, e, http.MethodGet, "/api/v1/posts?filter_type=saved", bobToken)
	require.Equal(t, http.StatusOK, recList.Code)
	require.Len(t, saved, 1)
	assert.Equal(t, "Keep me", saved[0]["title"])
	assert.Equal(t, true, saved[0]["is_saved"])

	// Scope is viewer-relative
	recList, saved = doJSONList(t, e, http.MethodGet, "/api/v1/posts?filter_type=saved", aliceToken)
	require.Equal(t, http.StatusOK, recList.Code)
	assert.Empty(t, saved)
}
