package ports

import (
	"context"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByPublicID(ctx context.Context, publicID string) (*domain.Post, error)
	// List returns a page of posts, newest first, and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.Post, int64, error)
	// UpdateBody sets the post body. When markEdited is true the edited flag
	// is set in the same atomic update.
	UpdateBody(ctx context.Context, publicID, body string, markEdited bool) (*domain.Post, error)
	Delete(ctx context.Context, publicID string) error
	// AddLike adds userID to the post's liked-by set. Adding an existing
	// member is a no-op (set semantics, atomic at the storage level).
	AddLike(ctx context.Context, publicID, userID string) error
	// RemoveLike removes userID from the liked-by set. Removing an absent
	// member is a no-op.
	RemoveLike(ctx context.Context, publicID, userID string) error
}
