package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

// RedisStore is the shared second cache level for provider lookups. Values
// are stored as JSON so that entries survive process restarts and are shared
// across replicas.
type RedisStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewRedisStore(log *logger.Logger) (*RedisStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_KEY_PREFIX"))
	if prefix == "" {
		prefix = "astro"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{
		log:    log.With("service", "RedisStore"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

// GetJSON unmarshals the entry for key into dest. The bool reports whether
// the key was present.
func (s *RedisStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if s == nil || s.rdb == nil {
		return false, nil
	}
	raw, err := s.rdb.Get(ctx, s.prefix+":"+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry behaves like a miss; the caller will overwrite it.
		s.log.Warn("dropping corrupt redis cache entry", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *RedisStore) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.prefix+":"+key, raw, ttl).Err()
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
