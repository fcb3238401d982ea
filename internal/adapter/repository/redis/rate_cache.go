package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finarc/fintxn/internal/domain"
	"github.com/finarc/fintxn/internal/usecase"
)

// RateCache decorates a usecase.RateLookup with a Redis cache. Cached
// entries keep the upstream provenance tag; a cache hit does not rewrite
// where the rate originally came from.
type RateCache struct {
	client   *redis.Client
	upstream usecase.RateLookup
	ttl      time.Duration
	prefix   string
}

// NewRateCache creates a new RateCache in front of upstream.
func NewRateCache(client *redis.Client, upstream usecase.RateLookup, ttl time.Duration) *RateCache {
	return &RateCache{
		client:   client,
		upstream: upstream,
		ttl:      ttl,
		prefix:   "rate:",
	}
}

type cachedRate struct {
	Rate       string `json:"rate"`
	Provenance string `json:"provenance"`
}

// GetRate returns the cached rate for the pair, falling back to the
// upstream lookup on a miss. Upstream failures are never cached.
func (c *RateCache) GetRate(ctx context.Context, from, to string) (decimal.Decimal, domain.RateProvenance, error) {
	key := c.prefix + from + ":" + to

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached cachedRate
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			rate, parseErr := decimal.NewFromString(cached.Rate)
			if parseErr == nil {
				return rate, domain.RateProvenance(cached.Provenance), nil
			}
		}
	} else if err != redis.Nil {
		return decimal.Zero, "", err
	}

	rate, provenance, err := c.upstream.GetRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, "", err
	}

	payload, err := json.Marshal(cachedRate{Rate: rate.String(), Provenance: string(provenance)})
	if err == nil {
		// A failed cache write only costs the next caller a lookup.
		_ = c.client.Set(ctx, key, payload, c.ttl).Err()
	}

	return rate, provenance, nil
}
