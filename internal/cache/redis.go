package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Harshit1991/gymbooking/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session is the opaque authenticated identity stored against a token.
type Session struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// RedisSessionStore keeps admin sessions in Redis under an opaque uuid token
// with a TTL, so a restart of the app never resurrects stale logins.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(cfg config.RedisConfig, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (s *RedisSessionStore) Create(ctx context.Context, session Session) (string, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(token), payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get returns nil with no error for an unknown or expired token.
func (s *RedisSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func sessionKey(token string) string {
	return "session:" + token
}
