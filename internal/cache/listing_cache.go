package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingVersionKey = "listings:ver"

// ListingCache caches serialized listing search responses in Redis.
// Every entry is keyed by the current catalog version, so invalidation is a
// single INCR: old keys become unreachable and expire on their own TTL.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListingCache creates a ListingCache with the given entry TTL.
func NewListingCache(rdb *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{rdb: rdb, ttl: ttl}
}

func (c *ListingCache) key(ctx context.Context, rawQuery string) string {
	ver, err := c.rdb.Get(ctx, listingVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("Listing cache: failed to read version key: %v", err)
	}
	return fmt.Sprintf("listings:%d:%s", ver, rawQuery)
}

// Get returns the cached response body for a query string, if present.
func (c *ListingCache) Get(ctx context.Context, rawQuery string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, c.key(ctx, rawQuery)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Listing cache: get failed: %v", err)
		}
		return nil, false
	}
	return data, true
}

// Set stores a response body for a query string. Failures are logged only; the
// cache never fails the read path.
func (c *ListingCache) Set(ctx context.Context, rawQuery string, body []byte) {
	if err := c.rdb.Set(ctx, c.key(ctx, rawQuery), body, c.ttl).Err(); err != nil {
		log.Printf("Listing cache: set failed: %v", err)
	}
}

// Invalidate bumps the catalog version, orphaning every cached entry.
// Called after any listing mutation.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, listingVersionKey).Err(); err != nil {
		log.Printf("Listing cache: invalidate failed: %v", err)
	}
}
