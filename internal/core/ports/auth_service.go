package ports

import (
	"context"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Bio       string
	Avatar    string
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements registration, login, and refresh-token rotation.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// RegisterSuperuser runs the base registration path, then promotes the
	// account. Validation lives in Register only.
	RegisterSuperuser(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	// Refresh exchanges a valid refresh token for a new pair, revoking the
	// old token in the same step.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
