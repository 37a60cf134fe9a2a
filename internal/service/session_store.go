package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const sessionKeyPrefix = "session:"

// SessionStore tracks live session token IDs in Redis so logout can
// revoke a credential server-side before its JWT expiry.
type SessionStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewSessionStore(client *redis.Client, log *logrus.Logger) *SessionStore {
	return &SessionStore{
		client: client,
		log:    log,
	}
}

func sessionKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, userID.String(), tokenID)
}

// Store registers a freshly minted token ID with the session TTL.
func (s *SessionStore) Store(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(userID, tokenID), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return err
	}
	return nil
}

// Exists reports whether the token ID is still live (not revoked).
func (s *SessionStore) Exists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, sessionKey(userID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check session in Redis: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

// Revoke removes a single session token, invalidating the credential.
func (s *SessionStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := s.client.Del(ctx, sessionKey(userID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to revoke session in Redis: %+v", err)
		return err
	}
	return nil
}
