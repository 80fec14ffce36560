package denylist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// revokedValue — полезной нагрузки у записи нет, сам факт ключа и есть отзыв.
const revokedValue = "revoked"

type redisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore создаёт denylist поверх Redis из URL
// (например, redis://:pass@host:6379/0). Если prefix пустой — используется "bl_".
//
// SET с EX и GET атомарны по ключу на стороне Redis, поэтому дополнительной
// синхронизации в процессе не требуется.
func NewRedisStore(redisURL, prefix string) (Store, error) {
	if prefix == "" {
		prefix = "bl_"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("denylist: parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("denylist: redis ping: %w", err)
	}

	return &redisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *redisStore) key(token string) string { return s.prefix + token }

func (s *redisStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Токен уже истёк: verifier отклонит его по exp, запись не нужна.
		return nil
	}

	return s.rdb.Set(ctx, s.key(token), revokedValue, ttl).Err()
}

func (s *redisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if err := s.rdb.Get(ctx, s.key(token)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s *redisStore) Close() error { return s.rdb.Close() }
