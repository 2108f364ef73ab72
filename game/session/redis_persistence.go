package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wricardo/mcp-training/icerunner/game/service"
)

// DefaultKeyPrefix namespaces session keys in Redis.
const DefaultKeyPrefix = "icerunner:session:"

// DefaultSessionTTL matches the in-memory retention of idle sessions.
const DefaultSessionTTL = 24 * time.Hour

// RedisPersistence implements SessionPersistence on a Redis keyspace. Every
// save refreshes the key's TTL so idle sessions expire on their own.
type RedisPersistence struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	timeout time.Duration
}

// NewRedisPersistence connects to the Redis server at url, e.g.
// redis://localhost:6379/0, and checks it is reachable.
func NewRedisPersistence(ctx context.Context, url string) (*RedisPersistence, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisPersistenceWithClient(client, DefaultKeyPrefix, DefaultSessionTTL), nil
}

// NewRedisPersistenceWithClient wraps an existing client. A zero ttl stores
// keys without expiry.
func NewRedisPersistenceWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisPersistence {
	return &RedisPersistence{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		timeout: 5 * time.Second,
	}
}

// Close releases the underlying client
func (rp *RedisPersistence) Close() error {
	return rp.client.Close()
}

// Save stores the session under its key and refreshes the TTL
func (rp *RedisPersistence) Save(session *service.Session) error {
	jsonData, err := encodeSession(session)
	if err != nil {
		return err
	}

	ctx, cancel := rp.context()
	defer cancel()

	if err := rp.client.Set(ctx, rp.key(session.ID), jsonData, rp.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Load retrieves a session by ID
func (rp *RedisPersistence) Load(id string) (*service.Session, error) {
	ctx, cancel := rp.context()
	defer cancel()

	jsonData, err := rp.client.Get(ctx, rp.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return decodeSession(jsonData)
}

// Delete removes a session key
func (rp *RedisPersistence) Delete(id string) error {
	ctx, cancel := rp.context()
	defer cancel()

	n, err := rp.client.Del(ctx, rp.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll scans the keyspace for session keys
func (rp *RedisPersistence) ListAll() ([]string, error) {
	ctx, cancel := rp.context()
	defer cancel()

	var ids []string
	iter := rp.client.Scan(ctx, 0, rp.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), rp.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return ids, nil
}

// Exists checks if a session key is present
func (rp *RedisPersistence) Exists(id string) bool {
	ctx, cancel := rp.context()
	defer cancel()

	n, err := rp.client.Exists(ctx, rp.key(id)).Result()
	return err == nil && n > 0
}

func (rp *RedisPersistence) key(id string) string {
	return rp.prefix + strings.ToLower(id)
}

func (rp *RedisPersistence) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), rp.timeout)
}
