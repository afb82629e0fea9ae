package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// claimMarker is the value stored while a request is still running. It can
// never collide with a real cached response because responses are JSON.
const claimMarker = "\x00claimed"

// IdempotencyStore implements middleware.IdempotencyStore using Redis.
// A transfer replayed with the same idempotency key must not move money
// twice, so the first request claims the key and later ones get the cached
// response.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "transfer:idem:",
	}
}

// CheckAndSet claims the key for the caller when it is unknown and reports a
// miss; the caller is expected to run the transfer and store the outcome with
// Update, or Release the claim on failure. A known key returns a hit with the
// cached response, or a nil response while the first request is still
// in flight.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	set, err := s.client.SetNX(ctx, fullKey, claimMarker, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if set {
		return false, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// The claim was released between SETNX and GET; let the caller
		// retry rather than run without a claim.
		return true, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	if string(existing) == claimMarker {
		return true, nil, nil
	}
	return true, existing, nil
}

// Update stores the final response under an already claimed key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}

// Release drops the claim so a failed transfer can be retried with the same
// key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
