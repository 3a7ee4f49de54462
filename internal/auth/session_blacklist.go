package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// JwtBlacklistStore keeps revoked tokens until they would have expired anyway
type JwtBlacklistStore interface {
	// IsBlacklisted checks if the given token is blacklisted.
	IsBlacklisted(token string) (bool, error)
	// AddToBlacklist adds the given token to the blacklist until exp.
	AddToBlacklist(token string, exp time.Time) error
}

// InMemoryBlacklistStore is a process-local blacklist purged on a cron schedule
type InMemoryBlacklistStore struct {
	blacklist map[string]time.Time
	mu        sync.RWMutex
	scheduler *cron.Cron
}

// DefaultPurgeSpec is how often expired entries are dropped
const DefaultPurgeSpec = "@every 5m"

// NewInMemoryBlacklistStore creates a store and starts its purge schedule
func NewInMemoryBlacklistStore() *InMemoryBlacklistStore {
	store, err := NewInMemoryBlacklistStoreWithSchedule(DefaultPurgeSpec)
	if err != nil {
		// DefaultPurgeSpec is a constant known to parse
		panic(err)
	}
	return store
}

// NewInMemoryBlacklistStoreWithSchedule creates a store purged according to a cron spec
func NewInMemoryBlacklistStoreWithSchedule(spec string) (*InMemoryBlacklistStore, error) {
	store := &InMemoryBlacklistStore{
		blacklist: make(map[string]time.Time),
		scheduler: cron.New(),
	}
	if _, err := store.scheduler.AddFunc(spec, store.CleanUpExpired); err != nil {
		return nil, err
	}
	store.scheduler.Start()
	return store, nil
}

// Stop halts the purge schedule
func (s *InMemoryBlacklistStore) Stop() {
	<-s.scheduler.Stop().Done()
}

// CleanUpExpired drops entries whose token has expired
func (s *InMemoryBlacklistStore) CleanUpExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, exp := range s.blacklist {
		if exp.Before(now) {
			delete(s.blacklist, token)
			removed++
		}
	}
	if removed > 0 {
		log.WithField("removed", removed).Debug("purged expired blacklist entries")
	}
}

// Len reports how many tokens are currently held
func (s *InMemoryBlacklistStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blacklist)
}

// IsBlacklisted implements JwtBlacklistStore
func (s *InMemoryBlacklistStore) IsBlacklisted(token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.blacklist[token]
	return exists, nil
}

// AddToBlacklist implements JwtBlacklistStore
func (s *InMemoryBlacklistStore) AddToBlacklist(token string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blacklist[token] = exp
	return nil
}

// RedisBlacklistStore shares the blacklist between instances; entries expire through the key TTL
type RedisBlacklistStore struct {
	Client  *redis.Client
	Prefix  string
	Timeout time.Duration
}

// NewRedisBlacklistStore creates a blacklist backed by the given redis client
func NewRedisBlacklistStore(client *redis.Client) *RedisBlacklistStore {
	return &RedisBlacklistStore{
		Client:  client,
		Prefix:  "jwt:blacklist:",
		Timeout: 2 * time.Second,
	}
}

func (s *RedisBlacklistStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.Prefix + hex.EncodeToString(sum[:])
}

// IsBlacklisted implements JwtBlacklistStore
func (s *RedisBlacklistStore) IsBlacklisted(token string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	n, err := s.Client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddToBlacklist implements JwtBlacklistStore. Already expired tokens are not stored.
func (s *RedisBlacklistStore) AddToBlacklist(token string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	return s.Client.Set(ctx, s.key(token), 1, ttl).Err()
}
