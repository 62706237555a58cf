package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
)

const revokedPrefix = "auth:revoked:"

// RevocationStore is a denylist of token ids. Entries expire together with
// the token they revoke.
type RevocationStore struct {
	rdb *redis.Client
}

func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty token id")
	}
	if ttl <= 0 {
		// already expired, nothing to deny
		return nil
	}
	if err := s.rdb.Set(ctx, revokedPrefix+jti, "1", ttl).Err(); err != nil {
		return apperror.Storage("revoke token", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, apperror.Storage("check revoked token", err)
	}
	return n > 0, nil
}
