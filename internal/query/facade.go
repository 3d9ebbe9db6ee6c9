// Package query composes the stores into shaped read responses. It is
// stateless: every derived count and viewer-relative flag is computed from
// the edge-sets at read time, never cached on an entity.
package query

import (
	"context"

	"github.com/chyrp-social/backend/internal/models"
	"github.com/chyrp-social/backend/internal/repositories"
)

// Facade is the read path over the stores
type Facade struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	saves    repositories.SavedPostRepository
	comments repositories.CommentRepository
	follows  repositories.FollowRepository
}

// NewFacade creates a new Facade
func NewFacade(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	saves repositories.SavedPostRepository,
	comments repositories.CommentRepository,
	follows repositories.FollowRepository,
) *Facade {
	return &Facade{
		users:    users,
		posts:    posts,
		likes:    likes,
		saves:    saves,
		comments: comments,
		follows:  follows,
	}
}

// UserView shapes a user with follower counts derived from the follow
// edge-set
func (f *Facade) UserView(ctx context.Context, user *models.User) (models.UserView, error) {
	followers, err := f.follows.GetFollowersCount(ctx, user.ID)
	if err != nil {
		return models.UserView{}, err
	}
	following, err := f.follows.GetFollowingCount(ctx, user.ID)
	if err != nil {
		return models.UserView{}, err
	}
	return models.UserView{
		ID:             user.ID,
		Email:          user.Email,
		Username:       user.Username,
		FullName:       user.FullName,
		Bio:            user.Bio,
		AvatarURL:      user.AvatarURL,
		CreatedAt:      user.CreatedAt,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

// UserViewByID shapes the user addressed by id
func (f *Facade) UserViewByID(ctx context.Context, id uint) (models.UserView, error) {
	user, err := f.users.GetUserByID(ctx, id)
	if err != nil {
		return models.UserView{}, err
	}
	return f.UserView(ctx, user)
}

// PostView shapes a single post for the viewer
func (f *Facade) PostView(ctx context.Context, post *models.Post, viewerID uint) (models.PostView, error) {
	views, err := f.ShapePosts(ctx, []models.Post{*post}, viewerID)
	if err != nil {
		return models.PostView{}, err
	}
	return views[0], nil
}

// ShapePosts turns store posts into PostViews: author profile, derived
// likes/comments counts, and viewer-relative is_liked/is_saved flags. All
// lookups are batched per page.
func (f *Facade) ShapePosts(ctx context.Context, posts []models.Post, viewerID uint) ([]models.PostView, error) {
	views := make([]models.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	postIDs := make([]uint, len(posts))
	authorSet := make(map[uint]bool)
	for i, p := range posts {
		postIDs[i] = p.ID
		authorSet[p.AuthorID] = true
	}
	authorIDs := make([]uint, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	authors, err := f.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorViews := make(map[uint]models.UserView, len(authors))
	for i := range authors {
		view, err := f.UserView(ctx, &authors[i])
		if err != nil {
			return nil, err
		}
		authorViews[authors[i].ID] = view
	}

	likeCounts, err := f.likes.GetLikesCountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := f.comments.GetCommentsCountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	likedMap := make(map[uint]bool)
	savedMap := make(map[uint]bool)
	if viewerID > 0 {
		if likedMap, err = f.likes.GetLikedPostIDs(ctx, viewerID, postIDs); err != nil {
			return nil, err
		}
		if savedMap, err = f.saves.GetSavedPostIDs(ctx, viewerID, postIDs); err != nil {
			return nil, err
		}
	}

	for _, p := range posts {
		views = append(views, models.PostView{
			ID:            p.ID,
			Title:         p.Title,
			Content:       p.Content,
			PostType:      p.PostType,
			Category:      p.Category,
			MediaURL:      p.MediaURL,
			Author:        authorViews[p.AuthorID],
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
			LikesCount:    likeCounts[p.ID],
			CommentsCount: commentCounts[p.ID],
			IsLiked:       likedMap[p.ID],
			IsSaved:       savedMap[p.ID],
		})
	}
	return views, nil
}

// ListPosts runs the filtered, paginated listing and shapes it for the
// viewer
func (f *Facade) ListPosts(ctx context.Context, filter repositories.PostFilter, page repositories.Page, viewerID uint) ([]models.PostView, error) {
	posts, err := f.posts.ListPosts(ctx, filter, page, viewerID)
	if err != nil {
		return nil, err
	}
	return f.ShapePosts(ctx, posts, viewerID)
}

// ListPostsByAuthor resolves the author by username (ErrNotFound when
// absent) and shapes their posts for the viewer
func (f *Facade) ListPostsByAuthor(ctx context.Context, username string, page repositories.Page, viewerID uint) ([]models.PostView, error) {
	author, err := f.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := f.posts.ListPostsByAuthor(ctx, author.ID, page)
	if err != nil {
		return nil, err
	}
	return f.ShapePosts(ctx, posts, viewerID)
}

// SearchPosts shapes a case-insensitive substring search over title and
// content
func (f *Facade) SearchPosts(ctx context.Context, q string, page repositories.Page, viewerID uint) ([]models.PostView, error) {
	posts, err := f.posts.SearchPosts(ctx, q, page)
	if err != nil {
		return nil, err
	}
	return f.ShapePosts(ctx, posts, viewerID)
}

// SearchUsers shapes a case-insensitive substring search over username and
// full name
func (f *Facade) SearchUsers(ctx context.Context, q string, page repositories.Page) ([]models.UserView, error) {
	users, err := f.users.SearchUsers(ctx, q, page)
	if err != nil {
		return nil, err
	}
	views := make([]models.UserView, 0, len(users))
	for i := range users {
		view, err := f.UserView(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ShapeComments shapes comments with their author profiles
func (f *Facade) ShapeComments(ctx context.Context, comments []models.Comment) ([]models.CommentView, error) {
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		author, err := f.UserViewByID(ctx, c.AuthorID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			Author:    author,
			PostID:    c.PostID,
			CreatedAt: c.CreatedAt,
		})
	}
	return views, nil
}

// ShapeMessages shapes messages with sender and receiver profiles
func (f *Facade) ShapeMessages(ctx context.Context, messages []models.Message) ([]models.MessageView, error) {
	views := make([]models.MessageView, 0, len(messages))
	profiles := make(map[uint]models.UserView)
	lookup := func(id uint) (models.UserView, error) {
		if v, ok := profiles[id]; ok {
			return v, nil
		}
		v, err := f.UserViewByID(ctx, id)
		if err != nil {
			return models.UserView{}, err
		}
		profiles[id] = v
		return v, nil
	}
	for _, m := range messages {
		sender, err := lookup(m.SenderID)
		if err != nil {
			return nil, err
		}
		receiver, err := lookup(m.ReceiverID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.MessageView{
			ID:        m.ID,
			Content:   m.Content,
			Sender:    sender,
			Receiver:  receiver,
			CreatedAt: m.CreatedAt,
			IsRead:    m.IsRead,
		})
	}
	return views, nil
}
