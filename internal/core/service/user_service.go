package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pulsefeed/social-api/internal/core/domain"
	"github.com/pulsefeed/social-api/internal/core/policy"
	"github.com/pulsefeed/social-api/internal/core/ports"
)

// UserService implements profile reads and self-service updates.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// Get returns the user addressed by publicID. Superuser rows are invisible to
// non-superuser callers: the lookup reports not-found rather than forbidden,
// so their existence does not leak.
func (s *UserService) Get(ctx context.Context, caller *domain.Caller, publicID string) (*domain.User, error) {
	id, err := domain.NormalizePublicID(publicID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.users.FindByPublicID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.IsSuperuser && (caller == nil || !caller.Superuser) {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// List returns all users visible to the caller. Non-superusers never see
// superuser rows.
func (s *UserService) List(ctx context.Context, caller *domain.Caller) ([]*domain.User, error) {
	includeSuperusers := caller != nil && caller.Superuser
	return s.users.List(ctx, includeSuperusers)
}

// Update applies a partial profile update. The object-level policy check runs
// here after the target is resolved; the handler has already run the coarse
// verb-level check.
func (s *UserService) Update(ctx context.Context, caller *domain.Caller, publicID string, fields ports.UserUpdate) (*domain.User, error) {
	target, err := s.Get(ctx, caller, publicID)
	if err != nil {
		return nil, err
	}

	if err := policy.CheckObject(caller, policy.UserItem, http.MethodPatch, target.PublicID); err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, target.PublicID, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", updated.PublicID).Msg("profile updated")
	return updated, nil
}
