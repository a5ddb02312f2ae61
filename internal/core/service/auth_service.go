package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulsefeed/social-api/internal/api/metrics"
	"github.com/pulsefeed/social-api/internal/core/domain"
	"github.com/pulsefeed/social-api/internal/core/ports"
)

// RefreshTokenStore abstracts the refresh-token side store (Redis).
type RefreshTokenStore interface {
	// Issue creates a new refresh token bound to the user.
	Issue(ctx context.Context, userID string) (string, error)
	// Redeem consumes a refresh token and returns the bound user ID. The
	// token is revoked in the same atomic step, so a token redeems at most
	// once.
	Redeem(ctx context.Context, token string) (string, error)
}

// AuthService implements registration, login, and refresh-token rotation.
type AuthService struct {
	users     ports.UserRepository
	tokens    RefreshTokenStore
	jwtSecret string
	accessTTL time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens RefreshTokenStore, jwtSecret string, accessTTL time.Duration, log zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &AuthService{users: users, tokens: tokens, jwtSecret: jwtSecret, accessTTL: accessTTL, log: log}
}

// Register creates a regular account. Username, email, and password are
// mandatory; uniqueness violations surface as ErrUserExists from the
// repository's unique indexes.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, domain.NewValidationError("username", "must not be empty")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, domain.NewValidationError("email", "must not be empty")
	}
	if in.Password == "" {
		return nil, domain.NewValidationError("password", "must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		PublicID:     domain.NewPublicID(),
		Username:     in.Username,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Bio:          in.Bio,
		Avatar:       in.Avatar,
		IsActive:     true,
		Created:      now,
		Updated:      now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.PublicID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// RegisterSuperuser creates an account through the base Register path, then
// promotes it. No validation is duplicated here.
func (s *AuthService) RegisterSuperuser(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := s.Register(ctx, in)
	if err != nil {
		return nil, err
	}

	promoted, err := s.users.MarkSuperuser(ctx, user.PublicID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", promoted.PublicID).Msg("superuser registered")
	return promoted, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		metrics.AuthLoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, err
	}
	if !user.IsActive {
		metrics.AuthLoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthLoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	metrics.AuthLoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.PublicID).Msg("user logged in")
	return pair, user, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued for the same user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidToken
	}

	userID, err := s.tokens.Redeem(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByPublicID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidToken
	}

	return s.issuePair(ctx, user)
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.Issue(ctx, user.PublicID)
	if err != nil {
		return nil, err
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":          user.PublicID,
		"username":     user.Username,
		"is_superuser": user.IsSuperuser,
		"exp":          time.Now().Add(s.accessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
