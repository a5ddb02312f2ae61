package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

const (
	refreshPrefix     = "refresh:"
	defaultRefreshTTL = 30 * 24 * time.Hour
)

// TokenStore keeps refresh tokens in Redis. Keys map an opaque token to the
// owning user's public ID with a TTL; redemption is a GETDEL, so a token can
// be redeemed at most once even under concurrent refresh calls.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = defaultRefreshTTL
	}
	return &TokenStore{client: client, ttl: ttl}
}

// Issue creates a fresh random token bound to userID.
func (s *TokenStore) Issue(ctx context.Context, userID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("issue refresh token: %w", err)
	}
	token := hex.EncodeToString(b)

	if err := s.client.Set(ctx, refreshPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return token, nil
}

// Redeem consumes a token and returns the bound user ID. Unknown or expired
// tokens are reported as domain.ErrInvalidToken.
func (s *TokenStore) Redeem(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, refreshPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("redeem refresh token: %w", err)
	}
	return userID, nil
}

// Revoke discards a token without redeeming it.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, refreshPrefix+token).Err()
}
