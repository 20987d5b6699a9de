// Package redis stores wizard sessions in Redis as JSON values.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

// KeyPrefix namespaces session keys.
const KeyPrefix = "wizard:session:"

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int

	// TTL expires idle sessions; every write refreshes it
	TTL time.Duration
}

// client is the subset of *redis.Client the store uses.
type client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	SetXX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// Store implements domain.SessionStore on Redis.
type Store struct {
	client client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}

	return NewWithClient(client, cfg.TTL), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(c *redis.Client, ttl time.Duration) *Store {
	return newStore(c, ttl)
}

func newStore(c client, ttl time.Duration) *Store {
	return &Store{client: c, ttl: ttl}
}

// Create implements domain.SessionStore.
func (s *Store) Create(ctx context.Context, session domain.Session) error {
	payload, err := encodeSession(session)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, sessionKey(session.ID), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionExists, session.ID)
	}
	return nil
}

// Get implements domain.SessionStore.
func (s *Store) Get(ctx context.Context, id string) (domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("redis get: %w", err)
	}

	session, err := decodeSession(data)
	if err != nil {
		return domain.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}

	if s.ttl > 0 {
		// Reading counts as activity.
		s.client.Expire(ctx, sessionKey(id), s.ttl)
	}
	return session, nil
}

// Save implements domain.SessionStore. It only overwrites existing keys.
func (s *Store) Save(ctx context.Context, session domain.Session) error {
	payload, err := encodeSession(session)
	if err != nil {
		return err
	}

	ok, err := s.client.SetXX(ctx, sessionKey(session.ID), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis setxx: %w", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Delete implements domain.SessionStore.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

// encodeSession stores Results as JSON null before a search and as []
// after an empty one, so decodeSession keeps the two apart.
func encodeSession(session domain.Session) ([]byte, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return payload, nil
}

func decodeSession(data []byte) (domain.Session, error) {
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func sessionKey(id string) string {
	return KeyPrefix + id
}

var _ domain.SessionStore = (*Store)(nil)
