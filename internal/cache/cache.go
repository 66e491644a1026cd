// Package cache provides a Redis-backed page cache for product listings.
// Every cached page lives under a namespace version; catalog writes bump the
// version instead of scanning for keys, so invalidation is one INCR.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog-api/internal/models"
)

const (
	versionKey = "products:ver"
	pageTTL    = 5 * time.Minute
)

type ListingCache struct {
	client *redis.Client
}

// NewListingCache wraps a Redis client; a nil client yields a cache whose
// operations are all no-ops, so callers never branch on availability.
func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

func (lc *ListingCache) Enabled() bool {
	return lc != nil && lc.client != nil
}

func (lc *ListingCache) key(ctx context.Context, query string, page, limit int) string {
	ver, err := lc.client.Get(ctx, versionKey).Int64()
	if err != nil {
		ver = 0
	}
	sum := sha1.Sum([]byte(fmt.Sprintf("q=%s:p=%d:l=%d", query, page, limit)))
	return fmt.Sprintf("products:%d:%x", ver, sum)
}

func (lc *ListingCache) Get(ctx context.Context, query string, page, limit int) (*models.ProductPage, bool) {
	if !lc.Enabled() {
		return nil, false
	}
	raw, err := lc.client.Get(ctx, lc.key(ctx, query, page, limit)).Bytes()
	if err != nil {
		return nil, false
	}
	var cached models.ProductPage
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

func (lc *ListingCache) Set(ctx context.Context, query string, page, limit int, result *models.ProductPage) {
	if !lc.Enabled() {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	// Cache failures are invisible to the caller; the store remains the
	// source of truth.
	lc.client.Set(ctx, lc.key(ctx, query, page, limit), raw, pageTTL)
}

// Invalidate drops every cached page by moving to a fresh namespace. Old
// entries age out via their TTL.
func (lc *ListingCache) Invalidate(ctx context.Context) {
	if !lc.Enabled() {
		return
	}
	lc.client.Incr(ctx, versionKey)
}
