package ports

import (
	"context"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

// CreatePostInput is the DTO passed from the transport layer to PostService.
// Author is the public ID the client claims to post as; it must resolve to
// the authenticated caller.
type CreatePostInput struct {
	Author string
	Body   string
}

// UpdatePostInput carries the mutable post fields. Author, when submitted,
// must still resolve to the post's owner; it can never reassign ownership.
type UpdatePostInput struct {
	Author string
	Body   string
}

// PostDetail pairs a post with its resolved author, ready for representation.
type PostDetail struct {
	Post   *domain.Post
	Author *domain.User
}

// PostService implements post CRUD and the like/unlike interaction.
type PostService interface {
	Create(ctx context.Context, caller *domain.Caller, in CreatePostInput) (*PostDetail, error)
	Get(ctx context.Context, publicID string) (*PostDetail, error)
	List(ctx context.Context, page, limit int) ([]*PostDetail, int64, error)
	Update(ctx context.Context, caller *domain.Caller, publicID string, in UpdatePostInput) (*PostDetail, error)
	Delete(ctx context.Context, caller *domain.Caller, publicID string) error
	// Like adds the caller to the post's liked-by set; liking twice is a
	// no-op. Unlike removes the caller; removing an absent like succeeds
	// silently.
	Like(ctx context.Context, caller *domain.Caller, publicID string) (*PostDetail, error)
	Unlike(ctx context.Context, caller *domain.Caller, publicID string) (*PostDetail, error)
}
