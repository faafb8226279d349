package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloomwell/wellness-platform/pkg/logging"
)

const snapshotKey = "catalog:snapshot"

// Loader is the database-facing side of the store. *Repository satisfies it.
type Loader interface {
	ListServices(ctx context.Context) ([]Service, error)
	ListPrograms(ctx context.Context) ([]Program, error)
	ListChallenges(ctx context.Context) ([]Challenge, error)
}

// Store serves catalog snapshots, caching them in redis with a TTL.
// A nil redis client degrades to loading from the database on every call.
type Store struct {
	loader Loader
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewStore creates a snapshot store.
func NewStore(loader Loader, redisClient *redis.Client, ttl time.Duration, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{loader: loader, redis: redisClient, ttl: ttl, logger: logger}
}

// Snapshot returns the current catalog view, from cache when fresh.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, snapshotKey).Bytes()
		if err == nil {
			var snap Snapshot
			if jsonErr := json.Unmarshal(raw, &snap); jsonErr == nil {
				return &snap, nil
			}
			// corrupt cache entry: fall through to a database load
			s.logger.Warn("catalog cache entry unreadable, reloading", "key", snapshotKey)
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("catalog cache read failed", "error", err)
		}
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := s.redis.Set(ctx, snapshotKey, data, s.ttl).Err(); err != nil {
				s.logger.Warn("catalog cache write failed", "error", err)
			}
		}
	}
	return snap, nil
}

// Invalidate drops the cached snapshot so the next read reloads.
func (s *Store) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("catalog: invalidate snapshot: %w", err)
	}
	return nil
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	services, err := s.loader.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load services: %w", err)
	}
	programs, err := s.loader.ListPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load programs: %w", err)
	}
	challenges, err := s.loader.ListChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load challenges: %w", err)
	}
	return NewSnapshot(services, programs, challenges), nil
}
