package ports

import (
	"context"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

// UserService exposes profile reads and self-service updates. Every method
// takes the caller so visibility rules can be applied per request.
type UserService interface {
	// Get returns the user with the given public ID. Superuser rows are
	// hidden from non-superuser callers (reported as not found).
	Get(ctx context.Context, caller *domain.Caller, publicID string) (*domain.User, error)
	// List returns all users visible to the caller.
	List(ctx context.Context, caller *domain.Caller) ([]*domain.User, error)
	// Update applies a partial profile update. Callers may only update
	// themselves.
	Update(ctx context.Context, caller *domain.Caller, publicID string, fields UserUpdate) (*domain.User, error)
}
