// Package snapshot persists the minimal state needed to restore a session
// across restarts: the active session and the theme preference. Domain
// collections are never stored here; they reload from their source.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"carelink/models"
)

// ErrNoSnapshot is returned by Load when nothing has been saved.
var ErrNoSnapshot = errors.New("no snapshot saved")

// Snapshot is the persisted local state.
type Snapshot struct {
	Session *models.Session `json:"session,omitempty"`
	Theme   models.Theme    `json:"theme"`
}

// Store loads and saves the snapshot.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
	Clear(ctx context.Context) error
}

const redisKey = "carelink:snapshot"

// RedisStore keeps the snapshot under a single Redis key.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a store whose snapshot expires after ttl; zero keeps it forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context) (Snapshot, error) {
	data, err := r.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := r.client.Set(ctx, redisKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, redisKey).Err()
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	saved *Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.saved == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return clone(*m.saved), nil
}

func (m *MemoryStore) Save(_ context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := clone(s)
	m.saved = &c
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = nil
	return nil
}

func clone(s Snapshot) Snapshot {
	if s.Session != nil {
		sess := s.Session.Clone()
		s.Session = &sess
	}
	return s
}
