// Package store keeps summaries of finished audits, keyed by URL.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/Bahjat/site-audit-tool/internal/model"
)

// ErrNotFound is returned when no audit is stored for a URL.
var ErrNotFound = errors.New("store: audit not found")

// DefaultTTL is how long a record is kept when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Cache is an in-memory audit store with per-record expiry.
type Cache struct {
	cache *bigcache.BigCache
}

// New returns a Cache whose records expire after ttl. The cleanup goroutine
// stops when ctx is done.
func New(ctx context.Context, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cfg := bigcache.Config{
		Shards:             64,
		LifeWindow:         ttl,
		CleanWindow:        min(ttl, time.Minute),
		MaxEntriesInWindow: 10000,
		MaxEntrySize:       4096,
		HardMaxCacheSize:   64, // MB
	}

	c, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: create cache: %w", err)
	}
	return &Cache{cache: c}, nil
}

// Save stores rec under its URL, replacing any previous record.
func (c *Cache) Save(ctx context.Context, rec model.AuditRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", rec.URL, err)
	}
	if err := c.cache.Set(rec.URL, data); err != nil {
		return fmt.Errorf("store: save %s: %w", rec.URL, err)
	}
	return nil
}

// Get returns the record stored for url, or ErrNotFound.
func (c *Cache) Get(ctx context.Context, url string) (*model.AuditRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := c.cache.Get(url)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", url, err)
	}

	var rec model.AuditRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", url, err)
	}
	return &rec, nil
}

// Len is the number of stored records.
func (c *Cache) Len() int {
	return c.cache.Len()
}

// Close releases the cache.
func (c *Cache) Close() error {
	return c.cache.Close()
}
