package ports

import (
	"context"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

// UserUpdate carries the client-writable profile fields for a partial update.
// Nil pointers mean "leave unchanged".
type UserUpdate struct {
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	Avatar    *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByPublicID retrieves a user by canonical public ID.
	FindByPublicID(ctx context.Context, publicID string) (*domain.User, error)
	// List returns all users. When includeSuperusers is false, superuser rows
	// are filtered out at the query level.
	List(ctx context.Context, includeSuperusers bool) ([]*domain.User, error)
	// Update applies the given fields and bumps the updated timestamp.
	Update(ctx context.Context, publicID string, fields UserUpdate) (*domain.User, error)
	// MarkSuperuser promotes an existing user to superuser.
	MarkSuperuser(ctx context.Context, publicID string) (*domain.User, error)
}
