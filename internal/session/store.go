package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

const keyPrefix = "refresh_token:"

// Store maps a subject id to its single currently-valid refresh token.
// Overwriting the record is the revocation mechanism: a superseded token
// still verifies cryptographically but no longer matches the store.
type Store struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewStore(rdb redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Put unconditionally replaces any existing record for the subject and
// resets its expiry to the refresh-token lifetime.
func (s *Store) Put(ctx context.Context, subjectID string, refreshToken string) error {
	if err := s.rdb.Set(ctx, keyPrefix+subjectID, refreshToken, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: put %s: %v", model.ErrSessionStoreUnavailable, subjectID, err)
	}
	return nil
}

// Get returns the current refresh token for the subject, or "" when no
// record exists. Store connectivity failures are a distinct fault and must
// not be read as "not authenticated".
func (s *Store) Get(ctx context.Context, subjectID string) (string, error) {
	value, err := s.rdb.Get(ctx, keyPrefix+subjectID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: get %s: %v", model.ErrSessionStoreUnavailable, subjectID, err)
	}
	return value, nil
}

func (s *Store) Delete(ctx context.Context, subjectID string) error {
	if err := s.rdb.Del(ctx, keyPrefix+subjectID).Err(); err != nil {
		return fmt.Errorf("%w: delete %s: %v", model.ErrSessionStoreUnavailable, subjectID, err)
	}
	return nil
}
