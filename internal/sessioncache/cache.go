// Package sessioncache persists provider sessions across portal restarts,
// keyed by the browser's session cookie. Redis is used when configured,
// matching the deployment's shared cache; a process-local store covers
// development and tests.
package sessioncache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inqgamerz48/university-management-v2.0/internal/provider"
)

type Store interface {
	Put(ctx context.Context, id string, session provider.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (provider.Session, bool, error)
	Delete(ctx context.Context, id string) error
}

const keyPrefix = "portal:session:"

type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Put(ctx context.Context, id string, session provider.Session, ttl time.Duration) error {
	encoded, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+id, encoded, ttl).Err()
}

func (s *Redis) Get(ctx context.Context, id string) (provider.Session, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return provider.Session{}, false, nil
	}
	if err != nil {
		return provider.Session{}, false, err
	}
	var session provider.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return provider.Session{}, false, err
	}
	return session, true, nil
}

func (s *Redis) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

type memoryEntry struct {
	session   provider.Session
	expiresAt time.Time
}

type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (s *Memory) Put(_ context.Context, id string, session provider.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{session: session, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *Memory) Get(_ context.Context, id string) (provider.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, id)
		return provider.Session{}, false, nil
	}
	return entry.session, true, nil
}

func (s *Memory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
