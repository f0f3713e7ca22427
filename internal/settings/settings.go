// Package settings exposes platform configuration (platform fee, booking
// reference prefix) as an explicit snapshot rather than ambient global
// state. Values live in Redis; a process-local copy is refreshed when its
// TTL lapses or Invalidate is called. The core receives values from the
// snapshot as plain parameters, so tests can substitute deterministic ones.
package settings

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyOfflinePlatformFee = "settings:offline_platform_fee"
	keyBookingRefPrefix   = "settings:booking_ref_prefix"
)

type Snapshot struct {
	OfflinePlatformFee float64
	BookingRefPrefix   string
}

type Store struct {
	client *redis.Client
	ttl    time.Duration

	// Defaults used when a key is absent or Redis is unreachable.
	defaults Snapshot

	mu        sync.RWMutex
	current   Snapshot
	fetchedAt time.Time
}

func NewStore(client *redis.Client, ttl time.Duration, defaults Snapshot) *Store {
	return &Store{
		client:   client,
		ttl:      ttl,
		defaults: defaults,
		current:  defaults,
	}
}

// Current returns the cached snapshot, refreshing from Redis when stale.
func (s *Store) Current(ctx context.Context) Snapshot {
	s.mu.RLock()
	fresh := time.Since(s.fetchedAt) < s.ttl
	snap := s.current
	s.mu.RUnlock()

	if fresh {
		return snap
	}
	return s.refresh(ctx)
}

// Invalidate forces the next Current call to hit Redis.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

func (s *Store) refresh(ctx context.Context) Snapshot {
	snap := s.defaults

	if s.client != nil {
		if v, err := s.client.Get(ctx, keyOfflinePlatformFee).Result(); err == nil {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				snap.OfflinePlatformFee = f
			}
		} else if err != redis.Nil {
			logrus.WithError(err).Warn("settings refresh failed, keeping defaults")
			return s.cache(snap)
		}

		if v, err := s.client.Get(ctx, keyBookingRefPrefix).Result(); err == nil && v != "" {
			snap.BookingRefPrefix = v
		}
	}

	return s.cache(snap)
}

func (s *Store) cache(snap Snapshot) Snapshot {
	s.mu.Lock()
	s.current = snap
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return snap
}
