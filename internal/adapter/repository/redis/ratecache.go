package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/usecase"
)

// RateCache decorates a RateSource with a short-lived Redis cache so a
// burst of transfers does not hammer the rate feed. Rates are point-in-time
// values, so the TTL stays small and a cache miss always goes to the feed.
type RateCache struct {
	source usecase.RateSource
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger zerolog.Logger
}

// NewRateCache creates a new RateCache around the given source.
func NewRateCache(source usecase.RateSource, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RateCache {
	return &RateCache{
		source: source,
		client: client,
		ttl:    ttl,
		prefix: "rate:",
		logger: logger,
	}
}

// Rate returns the cached rate for the currency, falling through to the
// source on a miss or any cache error. Cache failures never fail the lookup.
func (c *RateCache) Rate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	key := c.prefix + currencyCode

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if rate, perr := decimal.NewFromString(cached); perr == nil {
			return rate, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Str("currency", currencyCode).Msg("rate cache read failed")
	}

	rate, err := c.source.Rate(ctx, currencyCode)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.client.Set(ctx, key, rate.String(), c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("currency", currencyCode).Msg("rate cache write failed")
	}

	return rate, nil
}
