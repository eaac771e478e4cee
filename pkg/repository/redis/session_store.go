package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/artem13815/microbridge/pkg/onboarding"
)

const keyPrefix = "onboarding:session:"

// SessionStore keeps wizard sessions as JSON values; every save refreshes the TTL.
type SessionStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewSessionStore(client goredis.UniversalClient, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func key(userID uuid.UUID) string { return keyPrefix + userID.String() }

func (s *SessionStore) Get(ctx context.Context, userID uuid.UUID) (onboarding.Session, error) {
	data, err := s.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return onboarding.Session{}, onboarding.ErrNoSession
	}
	if err != nil {
		return onboarding.Session{}, fmt.Errorf("get session: %w", err)
	}
	var sess onboarding.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return onboarding.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess onboarding.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, key(userID)).Err()
}
